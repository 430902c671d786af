// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"authors-probe/internal/dto"
	"authors-probe/internal/model"
	"authors-probe/internal/store"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立新使用者
// @Summary     註冊使用者
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "註冊資料"
// @Success     201  {object} dto.StatusResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /register [post]
func RegisterHandler(users UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to hash password"})
		}

		_, err = users.CreateUser(c.Request().Context(), &model.User{Username: req.Username, PasswordHash: hash})
		if errors.Is(err, store.ErrDuplicate) {
			return c.JSON(http.StatusConflict, dto.HTTPError{Message: "username already taken"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, dto.StatusResponse{Status: "Success"})
	}
}
