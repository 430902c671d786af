// File: internal/router/router.go
package router

import (
	"authors-probe/internal/handler"
	"authors-probe/internal/handler/auth"
	"authors-probe/internal/handler/authors"
	"authors-probe/internal/middleware"
	"authors-probe/internal/store"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, s *store.Memory, secret []byte) {
	api := e.Group("/api")

	api.GET("/ping", handler.PingHandler())

	// 使用者註冊與登入；舊版腳本呼叫帶尾斜線的 /api/login/
	api.POST("/register", auth.RegisterHandler(s))
	api.POST("/login", auth.LoginHandler(s, secret))
	api.POST("/login/", auth.LoginHandler(s, secret))

	// 作者 CRUD（需登入）；上游 API 的 GET /api/authors 不需登入，此處刻意要求 Bearer，
	// 讓 probe 的第二個請求確實驗證到令牌
	apiAuthors := api.Group("/authors", middleware.RequireAuth(secret))
	apiAuthors.GET("", authors.ListAuthorsHandler(s))
	apiAuthors.POST("", authors.CreateAuthorHandler(s))
	apiAuthors.GET("/:id", authors.GetAuthorHandler(s))
	apiAuthors.PATCH("/:id", authors.UpdateAuthorHandler(s))
	apiAuthors.DELETE("/:id", authors.DeleteAuthorHandler(s))
}
