// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"fmt"
	"net/http"

	"authors-probe/internal/dto"
	"authors-probe/internal/model"
	"authors-probe/internal/service"

	"github.com/labstack/echo/v4"
)

// UserStore 登入與註冊所需的使用者存取介面
type UserStore interface {
	GetUserByName(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
}

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
)

// LoginHandler 使用 Username/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Username 與 Password 進行驗證，回傳 Bearer 令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(users UserStore, secret []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("invalid body: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		user, err := users.GetUserByName(c.Request().Context(), req.Username)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
		}
		if err := authenticateUser(*user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
		}

		token, err := issueAccessToken(secret, user.Username, service.AccessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: fmt.Sprintf("failed to issue token: %v", err)})
		}

		return c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
	}
}
