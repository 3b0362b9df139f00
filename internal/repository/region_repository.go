package repository

import (
	"context"

	"github.com/pressroom/article-service/internal/domain"
)

// RegionRepository manages region persistence.
type RegionRepository interface {
	// GetAll returns every region ordered by id.
	GetAll(ctx context.Context) ([]domain.Region, error)

	// GetByID returns the region with the given id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*domain.Region, error)

	// GetByCode returns the region with the given code, or nil when absent.
	// The code is normalized before matching, so lookups are effectively
	// case-insensitive.
	GetByCode(ctx context.Context, code string) (*domain.Region, error)

	// Exists reports whether a region with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Count returns the total number of regions.
	Count(ctx context.Context) (int, error)

	// Create inserts a new region and returns it with its assigned id.
	Create(ctx context.Context, code, name string) (*domain.Region, error)

	// Update modifies an existing region. Returns nil when the region does
	// not exist.
	Update(ctx context.Context, id int64, code, name string) (*domain.Region, error)

	// Delete removes a region. Returns false when the region did not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// SearchByName returns regions whose name contains the term,
	// case-insensitively.
	SearchByName(ctx context.Context, term string) ([]domain.Region, error)

	// ListPaginated returns one page of regions and the total region count.
	ListPaginated(ctx context.Context, offset, limit int) ([]domain.Region, int, error)

	// SearchPaginated returns one page of name matches and the total match count.
	SearchPaginated(ctx context.Context, term string, offset, limit int) ([]domain.Region, int, error)
}
