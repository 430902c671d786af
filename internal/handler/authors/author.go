// File: internal/handler/authors/author.go
package authors

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"authors-probe/internal/dto"
	"authors-probe/internal/model"
	"authors-probe/internal/store"

	"github.com/labstack/echo/v4"
)

const timeLayout = "2006-01-02 15:04:05"

// AuthorStore 作者資料存取介面
type AuthorStore interface {
	ListAuthors(ctx context.Context, page int, search string) []model.Author
	GetAuthor(ctx context.Context, id int64) (*model.Author, error)
	CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error)
	UpdateAuthor(ctx context.Context, a *model.Author) (*model.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error
}

func toResponse(a model.Author) dto.AuthorResponse {
	return dto.AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Surname:   a.Surname,
		CreatedAt: a.CreatedAt.Format(timeLayout),
		UpdatedAt: a.UpdatedAt.Format(timeLayout),
	}
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// @Summary     List authors
// @Description 分頁列出作者，每頁 10 筆；search 比對 name 或 surname（不分大小寫）
// @Tags        authors
// @Produce     json
// @Param       page   query    int    false "頁碼 (預設 1)"
// @Param       search query    string false "搜尋字串"
// @Success     200    {object} dto.AuthorListResponse
// @Failure     400    {object} dto.HTTPError
// @Failure     401    {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /authors [get]
func ListAuthorsHandler(s AuthorStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := 1
		if v := c.QueryParam("page"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil || p < 1 {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid page"})
			}
			page = p
		}

		found := s.ListAuthors(c.Request().Context(), page, c.QueryParam("search"))
		resp := dto.AuthorListResponse{
			Status:  "Success",
			Results: len(found),
			Authors: make([]dto.AuthorResponse, 0, len(found)),
		}
		for _, a := range found {
			resp.Authors = append(resp.Authors, toResponse(a))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get an author by ID
// @Tags        authors
// @Produce     json
// @Param       id  path     int true "作者 ID"
// @Success     200 {object} dto.SingleAuthorResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /authors/{id} [get]
func GetAuthorHandler(s AuthorStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid author ID"})
		}
		a, err := s.GetAuthor(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "author not found"})
		}
		return c.JSON(http.StatusOK, dto.SingleAuthorResponse{Status: "Success", Data: toResponse(*a)})
	}
}

// @Summary     Create an author
// @Tags        authors
// @Accept      json
// @Produce     json
// @Param       body body     dto.AuthorRequest true "作者資料"
// @Success     201  {object} dto.SingleAuthorResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /authors [post]
func CreateAuthorHandler(s AuthorStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.AuthorRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		a, err := s.CreateAuthor(c.Request().Context(), &model.Author{Name: req.Name, Surname: req.Surname})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, dto.SingleAuthorResponse{Status: "Success", Data: toResponse(*a)})
	}
}

// @Summary     Update an author
// @Tags        authors
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "作者 ID"
// @Param       body body     dto.AuthorRequest true "作者資料"
// @Success     202  {object} dto.SingleAuthorResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /authors/{id} [patch]
func UpdateAuthorHandler(s AuthorStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid author ID"})
		}
		var req dto.AuthorRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		a, err := s.UpdateAuthor(c.Request().Context(), &model.Author{ID: id, Name: req.Name, Surname: req.Surname})
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "author not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: err.Error()})
		}
		return c.JSON(http.StatusAccepted, dto.SingleAuthorResponse{Status: "Success", Data: toResponse(*a)})
	}
}

// @Summary     Delete an author
// @Tags        authors
// @Produce     json
// @Param       id  path     int true "作者 ID"
// @Success     200 {object} dto.StatusResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /authors/{id} [delete]
func DeleteAuthorHandler(s AuthorStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid author ID"})
		}
		if err := s.DeleteAuthor(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "author not found"})
		}
		return c.JSON(http.StatusOK, dto.StatusResponse{Status: "Success"})
	}
}
