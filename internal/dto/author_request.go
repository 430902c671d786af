// File: internal/dto/author_request.go
package dto

// AuthorRequest is the body of author create/update calls. The probe also
// sends it as the body of its authenticated GET.
// swagger:model dto.AuthorRequest
type AuthorRequest struct {
	Name    string `json:"name" validate:"required" example:"John"`
	Surname string `json:"surname" validate:"required" example:"810"`
}
