package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pressroom/article-service/internal/domain"
)

// errorResponse is the uniform JSON error envelope.
type errorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// writeDomainError maps a taxonomy error to its HTTP status and envelope.
// The mapping is fixed across all resources. Internal faults are logged with
// full detail but reported generically.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		resp := errorResponse{Error: strings.Join(validationErr.Messages, "; ")}
		if len(validationErr.Messages) > 1 {
			msgs := make([]any, len(validationErr.Messages))
			for i, m := range validationErr.Messages {
				msgs[i] = m
			}
			resp.Details = map[string]any{"messages": msgs}
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   conflictErr.Message,
			Details: conflictErr.Details,
		})
		return
	}

	// Bare sentinels without a typed wrapper still map to their status.
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed with internal error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
