package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pressroom/article-service/internal/domain"
)

// Compile-time interface verification.
var _ AuthorRepository = (*PgAuthorRepository)(nil)

const authorColumns = "id, first_name, last_name, created_at, updated_at"

// PgAuthorRepository is a PostgreSQL implementation of AuthorRepository.
type PgAuthorRepository struct {
	db DBTX
}

// NewPgAuthorRepository creates a new PostgreSQL author repository.
func NewPgAuthorRepository(db DBTX) *PgAuthorRepository {
	return &PgAuthorRepository{db: db}
}

// GetAll returns every author ordered by id.
func (r *PgAuthorRepository) GetAll(ctx context.Context) ([]domain.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

// GetByID returns the author with the given id, or nil when absent.
func (r *PgAuthorRepository) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var a domain.Author
	err := r.db.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

// Exists reports whether an author with the given id exists.
func (r *PgAuthorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

// Count returns the total number of authors.
func (r *PgAuthorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

// Create inserts a new author and returns it with its assigned id. The row is
// written through the active transaction without committing.
func (r *PgAuthorRepository) Create(ctx context.Context, firstName, lastName string) (*domain.Author, error) {
	query := `
		INSERT INTO authors (first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + authorColumns

	now := time.Now().UTC()
	var a domain.Author
	err := r.db.QueryRow(ctx, query, firstName, lastName, now).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &a, nil
}

// Update modifies an existing author. Returns nil when the author does not
// exist.
func (r *PgAuthorRepository) Update(ctx context.Context, id int64, firstName, lastName string) (*domain.Author, error) {
	query := `
		UPDATE authors
		SET first_name = $2, last_name = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + authorColumns

	var a domain.Author
	err := r.db.QueryRow(ctx, query, id, firstName, lastName, time.Now().UTC()).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return &a, nil
}

// Delete removes an author. Returns false when the author did not exist.
func (r *PgAuthorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete author: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search returns authors whose first or last name contains the term,
// case-insensitively.
func (r *PgAuthorRepository) Search(ctx context.Context, term string) ([]domain.Author, error) {
	query := `
		SELECT ` + authorColumns + `
		FROM authors
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

// ListPaginated returns one page of authors and the total author count.
func (r *PgAuthorRepository) ListPaginated(ctx context.Context, offset, limit int) ([]domain.Author, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors page: %w", err)
	}
	defer rows.Close()

	authors, err := scanAuthors(rows)
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// SearchPaginated returns one page of name matches and the total match count.
func (r *PgAuthorRepository) SearchPaginated(ctx context.Context, term string, offset, limit int) ([]domain.Author, int, error) {
	pattern := "%" + term + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM authors WHERE first_name ILIKE $1 OR last_name ILIKE $1`
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count author matches: %w", err)
	}

	query := `
		SELECT ` + authorColumns + `
		FROM authors
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY id LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search authors page: %w", err)
	}
	defer rows.Close()

	authors, err := scanAuthors(rows)
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// CountArticles returns the number of articles owned by the author.
func (r *PgAuthorRepository) CountArticles(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE author_id = $1`, authorID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author articles: %w", err)
	}
	return count, nil
}

// ListWithArticleCounts returns every author with its article count.
func (r *PgAuthorRepository) ListWithArticleCounts(ctx context.Context) ([]domain.AuthorWithStats, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name, a.created_at, a.updated_at,
		       COUNT(ar.id) AS article_count
		FROM authors a
		LEFT JOIN articles ar ON ar.author_id = a.id
		GROUP BY a.id
		ORDER BY a.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors with article counts: %w", err)
	}
	defer rows.Close()

	var result []domain.AuthorWithStats
	for rows.Next() {
		var s domain.AuthorWithStats
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.CreatedAt, &s.UpdatedAt, &s.ArticleCount); err != nil {
			return nil, fmt.Errorf("failed to scan author stats row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author stats rows: %w", err)
	}

	return result, nil
}

// scanAuthors collects author rows into a slice.
func scanAuthors(rows pgx.Rows) ([]domain.Author, error) {
	var authors []domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author rows: %w", err)
	}
	return authors, nil
}
