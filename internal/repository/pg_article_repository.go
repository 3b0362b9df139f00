package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/article-service/internal/domain"
)

// Compile-time interface verification.
var _ ArticleRepository = (*PgArticleRepository)(nil)

const articleColumns = "id, title, content, author_id, created_at, updated_at"

// selectWithRelations loads an article together with its author and the full
// region set in a single aggregated query, so callers never pay an N+1 cost
// on listing endpoints. Regions come back as a jsonb array ordered by id.
const selectWithRelations = `
	SELECT a.id, a.title, a.content, a.author_id, a.created_at, a.updated_at,
	       au.first_name, au.last_name, au.created_at, au.updated_at,
	       COALESCE(jsonb_agg(jsonb_build_object(
	           'id', r.id, 'code', r.code, 'name', r.name,
	           'created_at', r.created_at, 'updated_at', r.updated_at
	       ) ORDER BY r.id) FILTER (WHERE r.id IS NOT NULL), '[]'::jsonb) AS regions
	FROM articles a
	LEFT JOIN authors au ON au.id = a.author_id
	LEFT JOIN article_regions ar ON ar.article_id = a.id
	LEFT JOIN regions r ON r.id = ar.region_id`

const groupWithRelations = ` GROUP BY a.id, au.id`

// regionJSON mirrors the jsonb_build_object shape used by selectWithRelations.
type regionJSON struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PgArticleRepository is a PostgreSQL implementation of ArticleRepository.
type PgArticleRepository struct {
	db DBTX
}

// NewPgArticleRepository creates a new PostgreSQL article repository.
func NewPgArticleRepository(db DBTX) *PgArticleRepository {
	return &PgArticleRepository{db: db}
}

// GetByID returns the bare article with the given id, or nil when absent.
func (r *PgArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	var a domain.Article
	err := r.db.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}

	return &a, nil
}

// GetByIDWithRelations returns the article with author and regions eagerly
// loaded, or nil when absent.
func (r *PgArticleRepository) GetByIDWithRelations(ctx context.Context, id int64) (*domain.ArticleWithRelations, error) {
	query := selectWithRelations + `
	WHERE a.id = $1` + groupWithRelations

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article with relations: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticlesWithRelations(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return &articles[0], nil
}

// Exists reports whether an article with the given id exists.
func (r *PgArticleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}
	return exists, nil
}

// Count returns the total number of articles.
func (r *PgArticleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// CreateWithRegions inserts a new article and its region associations. The
// rows are written through the active transaction without committing.
func (r *PgArticleRepository) CreateWithRegions(ctx context.Context, title, content string, authorID *int64, regionIDs []int64) (*domain.Article, error) {
	query := `
		INSERT INTO articles (title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + articleColumns

	now := time.Now().UTC()
	var a domain.Article
	err := r.db.QueryRow(ctx, query, title, content, authorID, now).
		Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	if err := r.insertRegions(ctx, a.ID, regionIDs); err != nil {
		return nil, err
	}

	return &a, nil
}

// Update modifies the scalar fields of an existing article. Returns nil when
// the article does not exist.
func (r *PgArticleRepository) Update(ctx context.Context, id int64, title, content string, authorID *int64) (*domain.Article, error) {
	query := `
		UPDATE articles
		SET title = $2, content = $3, author_id = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + articleColumns

	var a domain.Article
	err := r.db.QueryRow(ctx, query, id, title, content, authorID, time.Now().UTC()).
		Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	return &a, nil
}

// ReplaceRegions replaces the article's region association set. The supplied
// ids fully replace the prior set; they are never merged.
func (r *PgArticleRepository) ReplaceRegions(ctx context.Context, articleID int64, regionIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM article_regions WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("failed to clear article regions: %w", err)
	}
	return r.insertRegions(ctx, articleID, regionIDs)
}

// insertRegions associates the article with each region id in one statement.
func (r *PgArticleRepository) insertRegions(ctx context.Context, articleID int64, regionIDs []int64) error {
	if len(regionIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO article_regions (article_id, region_id)
		SELECT $1, unnest($2::bigint[])`

	if _, err := r.db.Exec(ctx, query, articleID, regionIDs); err != nil {
		return fmt.Errorf("failed to insert article regions: %w", err)
	}
	return nil
}

// Delete removes an article. The join rows go with it via ON DELETE CASCADE.
// Returns false when the article did not exist.
func (r *PgArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPaginated returns one page of articles with relations and the total
// article count.
func (r *PgArticleRepository) ListPaginated(ctx context.Context, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := selectWithRelations + groupWithRelations + `
	ORDER BY a.id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles page: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticlesWithRelations(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListByAuthorPaginated returns one page of the author's articles and the
// total count of that author's articles.
func (r *PgArticleRepository) ListByAuthorPaginated(ctx context.Context, authorID int64, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE author_id = $1`, authorID).
		Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count articles by author: %w", err)
	}

	query := selectWithRelations + `
	WHERE a.author_id = $1` + groupWithRelations + `
	ORDER BY a.id LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles by author: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticlesWithRelations(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListByRegionPaginated returns one page of articles associated with the
// region and the total count of such articles.
func (r *PgArticleRepository) ListByRegionPaginated(ctx context.Context, regionID int64, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM article_regions WHERE region_id = $1`, regionID).
		Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count articles by region: %w", err)
	}

	// Membership is filtered through a subquery so the aggregated region set
	// of each matched article stays complete.
	query := selectWithRelations + `
	WHERE a.id IN (SELECT article_id FROM article_regions WHERE region_id = $1)` + groupWithRelations + `
	ORDER BY a.id LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, regionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles by region: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticlesWithRelations(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// SearchPaginated returns one page of title/content matches and the total
// match count.
func (r *PgArticleRepository) SearchPaginated(ctx context.Context, term string, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	pattern := "%" + term + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM articles WHERE title ILIKE $1 OR content ILIKE $1`
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count article matches: %w", err)
	}

	query := selectWithRelations + `
	WHERE a.title ILIKE $1 OR a.content ILIKE $1` + groupWithRelations + `
	ORDER BY a.id LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search articles page: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticlesWithRelations(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// scanArticlesWithRelations collects aggregated article rows into a slice.
func scanArticlesWithRelations(rows pgx.Rows) ([]domain.ArticleWithRelations, error) {
	var articles []domain.ArticleWithRelations
	for rows.Next() {
		var (
			a          domain.ArticleWithRelations
			auFirst    *string
			auLast     *string
			auCreated  *time.Time
			auUpdated  *time.Time
			regionsRaw []byte
		)

		err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
			&auFirst, &auLast, &auCreated, &auUpdated,
			&regionsRaw,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		if a.AuthorID != nil && auFirst != nil && auLast != nil {
			a.Author = &domain.Author{
				ID:        *a.AuthorID,
				FirstName: *auFirst,
				LastName:  *auLast,
			}
			if auCreated != nil {
				a.Author.CreatedAt = *auCreated
			}
			if auUpdated != nil {
				a.Author.UpdatedAt = *auUpdated
			}
		}

		var snapshots []regionJSON
		if err := json.Unmarshal(regionsRaw, &snapshots); err != nil {
			return nil, fmt.Errorf("failed to decode article regions: %w", err)
		}
		a.Regions = make([]domain.Region, 0, len(snapshots))
		for _, s := range snapshots {
			a.Regions = append(a.Regions, domain.Region{
				ID:        s.ID,
				Code:      s.Code,
				Name:      s.Name,
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			})
		}

		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate article rows: %w", err)
	}

	return articles, nil
}
