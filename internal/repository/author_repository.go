package repository

import (
	"context"

	"github.com/pressroom/article-service/internal/domain"
)

// AuthorRepository manages author persistence.
type AuthorRepository interface {
	// GetAll returns every author ordered by id.
	GetAll(ctx context.Context) ([]domain.Author, error)

	// GetByID returns the author with the given id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	// Exists reports whether an author with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Count returns the total number of authors.
	Count(ctx context.Context) (int, error)

	// Create inserts a new author and returns it with its assigned id.
	Create(ctx context.Context, firstName, lastName string) (*domain.Author, error)

	// Update modifies an existing author. Returns nil when the author does
	// not exist.
	Update(ctx context.Context, id int64, firstName, lastName string) (*domain.Author, error)

	// Delete removes an author. Returns false when the author did not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// Search returns authors whose first or last name contains the term,
	// case-insensitively.
	Search(ctx context.Context, term string) ([]domain.Author, error)

	// ListPaginated returns one page of authors and the total author count.
	ListPaginated(ctx context.Context, offset, limit int) ([]domain.Author, int, error)

	// SearchPaginated returns one page of name matches and the total match count.
	SearchPaginated(ctx context.Context, term string, offset, limit int) ([]domain.Author, int, error)

	// CountArticles returns the number of articles owned by the author.
	CountArticles(ctx context.Context, authorID int64) (int, error)

	// ListWithArticleCounts returns every author with its article count.
	ListWithArticleCounts(ctx context.Context) ([]domain.AuthorWithStats, error)
}
