package domain

import (
	"strings"
	"time"
)

// Region represents a geographic region an article can be associated with.
// Regions are related to articles many-to-many via the article_regions table.
type Region struct {
	// ID is the surrogate primary key.
	ID int64

	// Code is the two-letter region code, always stored upper-case.
	// Codes are unique across all regions, case-insensitively.
	Code string

	// Name is the human-readable region name.
	Name string

	// CreatedAt records when the region row was inserted.
	CreatedAt time.Time

	// UpdatedAt records the last modification time.
	UpdatedAt time.Time
}

// NormalizeRegionCode trims surrounding whitespace and upper-cases a region
// code. All comparisons and writes use the normalized form.
func NormalizeRegionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
