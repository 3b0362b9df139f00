package domain

import (
	"time"
)

// Author represents a person who writes articles.
// An author owns zero or more articles; as long as at least one article
// references the author, the author cannot be deleted.
type Author struct {
	// ID is the surrogate primary key.
	ID int64

	// FirstName is the author's given name.
	FirstName string

	// LastName is the author's family name.
	LastName string

	// CreatedAt records when the author row was inserted.
	CreatedAt time.Time

	// UpdatedAt records the last modification time.
	UpdatedAt time.Time
}

// FullName returns the display name "first last". It is always derived,
// never stored.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AuthorWithStats pairs an author with the number of articles it owns.
type AuthorWithStats struct {
	Author
	ArticleCount int
}
