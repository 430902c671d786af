// File: internal/dto/author_response.go
package dto

// swagger:model dto.AuthorResponse
type AuthorResponse struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"John"`
	Surname   string `json:"surname" example:"810"`
	CreatedAt string `json:"created_at" example:"2024-01-02 15:04:05"`
	UpdatedAt string `json:"updated_at" example:"2024-01-02 15:04:05"`
}

// swagger:model dto.AuthorListResponse
type AuthorListResponse struct {
	Status  string           `json:"status" example:"Success"`
	Results int              `json:"results" example:"1"`
	Authors []AuthorResponse `json:"authors"`
}

// swagger:model dto.SingleAuthorResponse
type SingleAuthorResponse struct {
	Status string         `json:"status" example:"Success"`
	Data   AuthorResponse `json:"data"`
}
