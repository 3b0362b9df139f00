package domain

import (
	"time"
)

// Article represents a piece of written content. It optionally references an
// author and is associated with zero or more regions.
type Article struct {
	// ID is the surrogate primary key.
	ID int64

	// Title is the article headline.
	Title string

	// Content is the article body.
	Content string

	// AuthorID references the owning author. Nil means the article has no
	// author; a non-nil value must reference an existing author.
	AuthorID *int64

	// CreatedAt records when the article row was inserted.
	CreatedAt time.Time

	// UpdatedAt records the last modification time.
	UpdatedAt time.Time
}

// ArticleWithRelations is an article together with its eagerly loaded
// relationships. Repositories populate it in a single query so callers never
// trigger follow-up per-relation lookups.
type ArticleWithRelations struct {
	Article

	// Author is the owning author, or nil when AuthorID is null.
	Author *Author

	// Regions holds the associated regions ordered by id. It is never nil.
	Regions []Region
}
