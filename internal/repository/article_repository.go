package repository

import (
	"context"

	"github.com/pressroom/article-service/internal/domain"
)

// ArticleRepository manages article persistence, including the region
// association set and relationship-eager reads.
type ArticleRepository interface {
	// GetByID returns the bare article with the given id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*domain.Article, error)

	// GetByIDWithRelations returns the article with its author and regions
	// eagerly loaded in a single query, or nil when absent.
	GetByIDWithRelations(ctx context.Context, id int64) (*domain.ArticleWithRelations, error)

	// Exists reports whether an article with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Count returns the total number of articles.
	Count(ctx context.Context) (int, error)

	// CreateWithRegions inserts a new article and its region associations.
	// The write is flushed immediately so the id is assigned, but not
	// committed.
	CreateWithRegions(ctx context.Context, title, content string, authorID *int64, regionIDs []int64) (*domain.Article, error)

	// Update modifies the scalar fields of an existing article. Returns nil
	// when the article does not exist.
	Update(ctx context.Context, id int64, title, content string, authorID *int64) (*domain.Article, error)

	// ReplaceRegions replaces the article's region association set with the
	// given ids. The supplied set fully replaces the prior one.
	ReplaceRegions(ctx context.Context, articleID int64, regionIDs []int64) error

	// Delete removes an article and its region associations. Returns false
	// when the article did not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListPaginated returns one page of articles with relations and the total
	// article count.
	ListPaginated(ctx context.Context, offset, limit int) ([]domain.ArticleWithRelations, int, error)

	// ListByAuthorPaginated returns one page of the author's articles and the
	// total count of that author's articles.
	ListByAuthorPaginated(ctx context.Context, authorID int64, offset, limit int) ([]domain.ArticleWithRelations, int, error)

	// ListByRegionPaginated returns one page of articles associated with the
	// region and the total count of such articles.
	ListByRegionPaginated(ctx context.Context, regionID int64, offset, limit int) ([]domain.ArticleWithRelations, int, error)

	// SearchPaginated returns one page of articles whose title or content
	// contains the term, case-insensitively, and the total match count.
	SearchPaginated(ctx context.Context, term string, offset, limit int) ([]domain.ArticleWithRelations, int, error)
}
