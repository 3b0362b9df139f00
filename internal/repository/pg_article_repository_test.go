package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleRelationColumns = []string{
	"id", "title", "content", "author_id", "created_at", "updated_at",
	"first_name", "last_name", "au_created_at", "au_updated_at",
	"regions",
}

const regionsJSON = `[
	{"id": 1, "code": "EU", "name": "Europe",
	 "created_at": "2026-01-02T10:00:00Z", "updated_at": "2026-01-02T10:00:00Z"},
	{"id": 2, "code": "NA", "name": "North America",
	 "created_at": "2026-01-02T10:00:00Z", "updated_at": "2026-01-02T10:00:00Z"}
]`

func TestPgArticleRepository_GetByIDWithRelations(t *testing.T) {
	t.Run("returns article with author and regions", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgArticleRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		authorID := int64(7)
		first := "Jane"
		last := "Doe"

		mock.ExpectQuery(`LEFT JOIN article_regions ar ON ar\.article_id = a\.id`).
			WithArgs(int64(10)).
			WillReturnRows(pgxmock.NewRows(articleRelationColumns).
				AddRow(int64(10), "A Title Here", "Some long content.", &authorID, now, now,
					&first, &last, &now, &now, []byte(regionsJSON)))

		article, err := repo.GetByIDWithRelations(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, article)
		require.NotNil(t, article.Author)
		assert.Equal(t, "Jane Doe", article.Author.FullName())
		require.Len(t, article.Regions, 2)
		assert.Equal(t, "EU", article.Regions[0].Code)
		assert.Equal(t, "NA", article.Regions[1].Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty region slice when article has none", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgArticleRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		mock.ExpectQuery(`LEFT JOIN article_regions ar ON ar\.article_id = a\.id`).
			WithArgs(int64(10)).
			WillReturnRows(pgxmock.NewRows(articleRelationColumns).
				AddRow(int64(10), "A Title Here", "Some long content.", (*int64)(nil), now, now,
					(*string)(nil), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil), []byte(`[]`)))

		article, err := repo.GetByIDWithRelations(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Nil(t, article.Author)
		assert.NotNil(t, article.Regions)
		assert.Empty(t, article.Regions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when absent", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgArticleRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`LEFT JOIN article_regions ar ON ar\.article_id = a\.id`).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows(articleRelationColumns))

		article, err := repo.GetByIDWithRelations(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, article)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgArticleRepository_GetByID(t *testing.T) {
	t.Run("returns nil when absent", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgArticleRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`FROM articles WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		article, err := repo.GetByID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, article)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgArticleRepository_CreateWithRegions(t *testing.T) {
	t.Run("inserts article and region links", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgArticleRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		authorID := int64(7)

		mock.ExpectQuery(`INSERT INTO articles`).
			WithArgs("A Title Here", "Some long content.", &authorID, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "title", "content", "author_id", "created_at", "updated_at",
			}).AddRow(int64(10), "A Title Here", "Some long content.", &authorID, now, now))

		mock.ExpectExec(`INSERT INTO article_regions`).
			WithArgs(int64(10), []int64{1, 2}).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		article, err := repo.CreateWithRegions(ctx, "A Title Here", "Some long content.", &authorID, []int64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, int64(10), article.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the link insert when no regions given", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgArticleRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		mock.ExpectQuery(`INSERT INTO articles`).
			WithArgs("A Title Here", "Some long content.", (*int64)(nil), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "title", "content", "author_id", "created_at", "updated_at",
			}).AddRow(int64(11), "A Title Here", "Some long content.", (*int64)(nil), now, now))

		article, err := repo.CreateWithRegions(ctx, "A Title Here", "Some long content.", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(11), article.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgArticleRepository_ReplaceRegions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgArticleRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM article_regions WHERE article_id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	mock.ExpectExec(`INSERT INTO article_regions`).
		WithArgs(int64(10), []int64{3}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.ReplaceRegions(ctx, 10, []int64{3})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgArticleRepository_ListByAuthorPaginated(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgArticleRepository(mock)
	ctx := context.Background()

	now := time.Now().UTC()
	authorID := int64(7)
	first := "Jane"
	last := "Doe"

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles WHERE author_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`WHERE a\.author_id = \$1`).
		WithArgs(int64(7), 20, 0).
		WillReturnRows(pgxmock.NewRows(articleRelationColumns).
			AddRow(int64(10), "A Title Here", "Some long content.", &authorID, now, now,
				&first, &last, &now, &now, []byte(`[]`)))

	articles, total, err := repo.ListByAuthorPaginated(ctx, 7, 0, 20)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 1, total)
	require.NotNil(t, articles[0].Author)
	assert.Equal(t, int64(7), articles[0].Author.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgArticleRepository_ListByRegionPaginated(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgArticleRepository(mock)
	ctx := context.Background()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM article_regions WHERE region_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`WHERE a\.id IN \(SELECT article_id FROM article_regions WHERE region_id = \$1\)`).
		WithArgs(int64(1), 20, 0).
		WillReturnRows(pgxmock.NewRows(articleRelationColumns).
			AddRow(int64(10), "A Title Here", "Some long content.", (*int64)(nil), now, now,
				(*string)(nil), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil), []byte(regionsJSON)))

	articles, total, err := repo.ListByRegionPaginated(ctx, 1, 0, 20)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 1, total)
	assert.Len(t, articles[0].Regions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgArticleRepository_SearchPaginated(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgArticleRepository(mock)
	ctx := context.Background()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles WHERE title ILIKE \$1 OR content ILIKE \$1`).
		WithArgs("%tide%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`WHERE a\.title ILIKE \$1 OR a\.content ILIKE \$1`).
		WithArgs("%tide%", 20, 0).
		WillReturnRows(pgxmock.NewRows(articleRelationColumns).
			AddRow(int64(10), "The Tide Rises", "Some long content.", (*int64)(nil), now, now,
				(*string)(nil), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil), []byte(`[]`)))

	articles, total, err := repo.SearchPaginated(ctx, "tide", 0, 20)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgArticleRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPgArticleRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM articles WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(ctx, 404)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
