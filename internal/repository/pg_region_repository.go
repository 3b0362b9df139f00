package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pressroom/article-service/internal/domain"
)

// uniqueViolation is the SQLSTATE reported when an insert or update breaks a
// unique index.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Compile-time interface verification.
var _ RegionRepository = (*PgRegionRepository)(nil)

const regionColumns = "id, code, name, created_at, updated_at"

// PgRegionRepository is a PostgreSQL implementation of RegionRepository.
type PgRegionRepository struct {
	db DBTX
}

// NewPgRegionRepository creates a new PostgreSQL region repository.
func NewPgRegionRepository(db DBTX) *PgRegionRepository {
	return &PgRegionRepository{db: db}
}

// GetAll returns every region ordered by id.
func (r *PgRegionRepository) GetAll(ctx context.Context) ([]domain.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	return scanRegions(rows)
}

// GetByID returns the region with the given id, or nil when absent.
func (r *PgRegionRepository) GetByID(ctx context.Context, id int64) (*domain.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions WHERE id = $1`

	var reg domain.Region
	err := r.db.QueryRow(ctx, query, id).
		Scan(&reg.ID, &reg.Code, &reg.Name, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get region by id: %w", err)
	}

	return &reg, nil
}

// GetByCode returns the region with the given code, or nil when absent. The
// code is normalized before matching; stored codes are always upper-case.
func (r *PgRegionRepository) GetByCode(ctx context.Context, code string) (*domain.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions WHERE code = $1`

	var reg domain.Region
	err := r.db.QueryRow(ctx, query, domain.NormalizeRegionCode(code)).
		Scan(&reg.ID, &reg.Code, &reg.Name, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get region by code: %w", err)
	}

	return &reg, nil
}

// Exists reports whether a region with the given id exists.
func (r *PgRegionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM regions WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check region existence: %w", err)
	}
	return exists, nil
}

// Count returns the total number of regions.
func (r *PgRegionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count regions: %w", err)
	}
	return count, nil
}

// Create inserts a new region and returns it with its assigned id.
func (r *PgRegionRepository) Create(ctx context.Context, code, name string) (*domain.Region, error) {
	query := `
		INSERT INTO regions (code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + regionColumns

	now := time.Now().UTC()
	var reg domain.Region
	err := r.db.QueryRow(ctx, query, code, name, now).
		Scan(&reg.ID, &reg.Code, &reg.Name, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		// The service checks first, but two concurrent inserts can both pass
		// that check; the unique index on code is the final arbiter.
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("region code already exists", map[string]any{"code": code})
		}
		return nil, fmt.Errorf("failed to create region: %w", err)
	}

	return &reg, nil
}

// Update modifies an existing region. Returns nil when the region does not
// exist.
func (r *PgRegionRepository) Update(ctx context.Context, id int64, code, name string) (*domain.Region, error) {
	query := `
		UPDATE regions
		SET code = $2, name = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + regionColumns

	var reg domain.Region
	err := r.db.QueryRow(ctx, query, id, code, name, time.Now().UTC()).
		Scan(&reg.ID, &reg.Code, &reg.Name, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("region code already exists", map[string]any{"code": code})
		}
		return nil, fmt.Errorf("failed to update region: %w", err)
	}

	return &reg, nil
}

// Delete removes a region. Returns false when the region did not exist.
func (r *PgRegionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete region: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SearchByName returns regions whose name contains the term,
// case-insensitively.
func (r *PgRegionRepository) SearchByName(ctx context.Context, term string) ([]domain.Region, error) {
	query := `
		SELECT ` + regionColumns + `
		FROM regions
		WHERE name ILIKE $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search regions: %w", err)
	}
	defer rows.Close()

	return scanRegions(rows)
}

// ListPaginated returns one page of regions and the total region count.
func (r *PgRegionRepository) ListPaginated(ctx context.Context, offset, limit int) ([]domain.Region, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + regionColumns + ` FROM regions ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list regions page: %w", err)
	}
	defer rows.Close()

	regions, err := scanRegions(rows)
	if err != nil {
		return nil, 0, err
	}
	return regions, total, nil
}

// SearchPaginated returns one page of name matches and the total match count.
func (r *PgRegionRepository) SearchPaginated(ctx context.Context, term string, offset, limit int) ([]domain.Region, int, error) {
	pattern := "%" + term + "%"

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM regions WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count region matches: %w", err)
	}

	query := `
		SELECT ` + regionColumns + `
		FROM regions
		WHERE name ILIKE $1
		ORDER BY id LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search regions page: %w", err)
	}
	defer rows.Close()

	regions, err := scanRegions(rows)
	if err != nil {
		return nil, 0, err
	}
	return regions, total, nil
}

// scanRegions collects region rows into a slice.
func scanRegions(rows pgx.Rows) ([]domain.Region, error) {
	var regions []domain.Region
	for rows.Next() {
		var reg domain.Region
		if err := rows.Scan(&reg.ID, &reg.Code, &reg.Name, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan region row: %w", err)
		}
		regions = append(regions, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate region rows: %w", err)
	}
	return regions, nil
}
