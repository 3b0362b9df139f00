package httpserver

import (
	"net/http"

	"github.com/pressroom/article-service/internal/container"
	"github.com/pressroom/article-service/internal/pagination"
	"github.com/pressroom/article-service/internal/service"
)

// listAuthors handles GET /authors.
func (s *Server) listAuthors(r *http.Request, c *container.Container) (int, any, error) {
	params, err := pagination.ParseParams(r.URL.Query())
	if err != nil {
		return 0, nil, err
	}

	authors, total, err := c.AuthorService().List(r.Context(), params)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, pagination.NewEnvelope(authors, total, params), nil
}

// listAuthorsWithStats handles GET /authors/with-stats.
func (s *Server) listAuthorsWithStats(r *http.Request, c *container.Container) (int, any, error) {
	authors, err := c.AuthorService().ListWithStats(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, authors, nil
}

// getAuthor handles GET /authors/{id}.
func (s *Server) getAuthor(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	author, err := c.AuthorService().Get(r.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, author, nil
}

// createAuthor handles POST /authors.
func (s *Server) createAuthor(r *http.Request, c *container.Container) (int, any, error) {
	var in service.AuthorInput
	if err := decodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	author, err := c.AuthorService().Create(r.Context(), in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, author, nil
}

// updateAuthor handles PUT /authors/{id}.
func (s *Server) updateAuthor(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	var in service.AuthorInput
	if err := decodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	author, err := c.AuthorService().Update(r.Context(), id, in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, author, nil
}

// deleteAuthor handles DELETE /authors/{id}.
func (s *Server) deleteAuthor(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	if err := c.AuthorService().Delete(r.Context(), id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, messageResponse{Message: "author deleted successfully"}, nil
}
