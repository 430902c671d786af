// File: internal/dto/login_request.go
package dto

// swagger:model dto.LoginRequest
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"useris"`
	Password string `json:"password" validate:"required" example:"labas"`
}
