// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查（不需認證）
// @Summary     Health Check
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Router      /ping [get]
func PingHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
