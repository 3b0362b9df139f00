package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pressroom/article-service/internal/domain"
)

// maxRequestBodySize caps request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

// decodeJSON reads and decodes a JSON request body into dst. Write endpoints
// require an application/json content type; anything else is a validation
// error, not an HTTP-level 415.
func decodeJSON(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return domain.NewValidationError("request content type must be application/json")
	}

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		return domain.NewValidationError("failed to read request body")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("invalid JSON request body")
	}
	return nil
}

// idParam parses the {id} URL parameter as a positive integer.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(fmt.Sprintf("invalid id: %q", raw))
	}
	return id, nil
}

// optionalIDQuery parses an optional positive-integer query parameter.
func optionalIDQuery(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return &id, nil
}
