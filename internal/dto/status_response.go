// File: internal/dto/status_response.go
package dto

// swagger:model dto.StatusResponse
type StatusResponse struct {
	Status string `json:"status" example:"Success"`
}
