// Package pagination implements the shared page/limit/search contract and the
// {data, pagination} response envelope used by every list endpoint.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pressroom/article-service/internal/domain"
)

// Parameter bounds and defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100

	pageParam   = "page"
	limitParam  = "limit"
	searchParam = "search"
)

// Params holds validated pagination and search parameters for one request.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// Limit is the page size, within [MinLimit, MaxLimit].
	Limit int

	// Search is the trimmed search term, empty when no filter was supplied.
	Search string
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseParams extracts and validates pagination parameters from a query
// string. Out-of-range values are rejected with a validation error rather
// than clamped; all violations are collected before returning.
func ParseParams(values url.Values) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	var errs []string

	if raw := values.Get(pageParam); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, "page must be an integer")
		case page < 1:
			errs = append(errs, "page must be at least 1")
		default:
			p.Page = page
		}
	}

	if raw := values.Get(limitParam); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, "limit must be an integer")
		case limit < MinLimit:
			errs = append(errs, fmt.Sprintf("limit must be at least %d", MinLimit))
		case limit > MaxLimit:
			errs = append(errs, fmt.Sprintf("limit cannot exceed %d", MaxLimit))
		default:
			p.Limit = limit
		}
	}

	p.Search = strings.TrimSpace(values.Get(searchParam))

	if len(errs) > 0 {
		return Params{}, domain.NewValidationError(errs...)
	}
	return p, nil
}

// Meta is the navigation metadata attached to every paginated response.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	TotalItems  int    `json:"total_items"`
	TotalPages  int    `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrev     bool   `json:"has_prev"`
	NextPage    *int   `json:"next_page"`
	PrevPage    *int   `json:"prev_page"`
	Search      string `json:"search,omitempty"`
}

// Envelope is the standard wrapper for list responses.
type Envelope struct {
	Data       any  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewEnvelope packages a page of results with navigation metadata. The search
// key is present only when a non-empty term was applied.
func NewEnvelope(data any, total int, p Params) Envelope {
	totalPages := 1
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	meta := Meta{
		CurrentPage: p.Page,
		PerPage:     p.Limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
		Search:      p.Search,
	}
	if meta.HasNext {
		next := p.Page + 1
		meta.NextPage = &next
	}
	if meta.HasPrev {
		prev := p.Page - 1
		meta.PrevPage = &prev
	}

	return Envelope{Data: data, Pagination: meta}
}
