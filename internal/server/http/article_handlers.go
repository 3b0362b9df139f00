package httpserver

import (
	"net/http"

	"github.com/pressroom/article-service/internal/container"
	"github.com/pressroom/article-service/internal/pagination"
	"github.com/pressroom/article-service/internal/service"
)

// listArticles handles GET /articles. Besides page/limit/search it accepts
// author_id and region_id filters; author_id wins when both are given.
func (s *Server) listArticles(r *http.Request, c *container.Container) (int, any, error) {
	params, err := pagination.ParseParams(r.URL.Query())
	if err != nil {
		return 0, nil, err
	}

	authorID, err := optionalIDQuery(r, "author_id")
	if err != nil {
		return 0, nil, err
	}
	regionID, err := optionalIDQuery(r, "region_id")
	if err != nil {
		return 0, nil, err
	}

	filter := service.ArticleFilter{AuthorID: authorID, RegionID: regionID}
	articles, total, err := c.ArticleService().List(r.Context(), params, filter)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, pagination.NewEnvelope(articles, total, params), nil
}

// getArticle handles GET /articles/{id}.
func (s *Server) getArticle(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	article, err := c.ArticleService().Get(r.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, article, nil
}

// createArticle handles POST /articles.
func (s *Server) createArticle(r *http.Request, c *container.Container) (int, any, error) {
	var in service.ArticleInput
	if err := decodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	article, err := c.ArticleService().Create(r.Context(), in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, article, nil
}

// updateArticle handles PUT /articles/{id}.
func (s *Server) updateArticle(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	var in service.ArticleInput
	if err := decodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	article, err := c.ArticleService().Update(r.Context(), id, in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, article, nil
}

// deleteArticle handles DELETE /articles/{id}.
func (s *Server) deleteArticle(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	if err := c.ArticleService().Delete(r.Context(), id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, messageResponse{Message: "article deleted successfully"}, nil
}
