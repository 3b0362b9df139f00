package httpserver

import (
	"net/http"

	"github.com/pressroom/article-service/internal/container"
	"github.com/pressroom/article-service/internal/pagination"
	"github.com/pressroom/article-service/internal/service"
)

// listRegions handles GET /regions.
func (s *Server) listRegions(r *http.Request, c *container.Container) (int, any, error) {
	params, err := pagination.ParseParams(r.URL.Query())
	if err != nil {
		return 0, nil, err
	}

	regions, total, err := c.RegionService().List(r.Context(), params)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, pagination.NewEnvelope(regions, total, params), nil
}

// getRegion handles GET /regions/{id}.
func (s *Server) getRegion(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	region, err := c.RegionService().Get(r.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, region, nil
}

// createRegion handles POST /regions.
func (s *Server) createRegion(r *http.Request, c *container.Container) (int, any, error) {
	var in service.RegionInput
	if err := decodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	region, err := c.RegionService().Create(r.Context(), in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, region, nil
}

// updateRegion handles PUT /regions/{id}.
func (s *Server) updateRegion(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	var in service.RegionInput
	if err := decodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	region, err := c.RegionService().Update(r.Context(), id, in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, region, nil
}

// deleteRegion handles DELETE /regions/{id}.
func (s *Server) deleteRegion(r *http.Request, c *container.Container) (int, any, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, nil, err
	}

	if err := c.RegionService().Delete(r.Context(), id); err != nil {
		return 0, nil, err
	}
	return http.StatusOK, messageResponse{Message: "region deleted successfully"}, nil
}
