package service

import (
	"context"
	"strings"

	"github.com/pressroom/article-service/internal/domain"
	"github.com/pressroom/article-service/internal/pagination"
	"github.com/pressroom/article-service/internal/repository"
)

// AuthorInput carries the writable author fields for create and update.
type AuthorInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthorService implements author business use cases.
type AuthorService struct {
	authors repository.AuthorRepository
}

// NewAuthorService creates a new author service.
func NewAuthorService(authors repository.AuthorRepository) *AuthorService {
	return &AuthorService{authors: authors}
}

// List returns one page of authors and the total count. A non-empty search
// term filters by name; an empty or whitespace-only term means no filter.
func (s *AuthorService) List(ctx context.Context, p pagination.Params) ([]AuthorDTO, int, error) {
	var (
		authors []domain.Author
		total   int
		err     error
	)

	if p.Search != "" {
		authors, total, err = s.authors.SearchPaginated(ctx, p.Search, p.Offset(), p.Limit)
	} else {
		authors, total, err = s.authors.ListPaginated(ctx, p.Offset(), p.Limit)
	}
	if err != nil {
		return nil, 0, err
	}

	return newAuthorDTOs(authors), total, nil
}

// Get returns the author with the given id.
func (s *AuthorService) Get(ctx context.Context, id int64) (*AuthorDTO, error) {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.NewNotFoundError("author", id)
	}

	dto := newAuthorDTO(author)
	return &dto, nil
}

// Create validates the input and inserts a new author.
func (s *AuthorService) Create(ctx context.Context, in AuthorInput) (*AuthorDTO, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	if errs := validateAuthorFields(firstName, lastName); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	author, err := s.authors.Create(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}

	dto := newAuthorDTO(author)
	return &dto, nil
}

// Update validates the input and modifies an existing author.
func (s *AuthorService) Update(ctx context.Context, id int64, in AuthorInput) (*AuthorDTO, error) {
	exists, err := s.authors.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("author", id)
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	if errs := validateAuthorFields(firstName, lastName); len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	author, err := s.authors.Update(ctx, id, firstName, lastName)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.NewNotFoundError("author", id)
	}

	dto := newAuthorDTO(author)
	return &dto, nil
}

// Delete removes an author. Deletion is blocked with a conflict while the
// author still owns articles; articles are never cascaded away silently.
func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if author == nil {
		return domain.NewNotFoundError("author", id)
	}

	articleCount, err := s.authors.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if articleCount > 0 {
		return domain.NewConflictError(
			"cannot delete author who has written articles",
			map[string]any{"author_id": id, "article_count": articleCount},
		)
	}

	deleted, err := s.authors.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("author", id)
	}
	return nil
}

// ListWithStats returns every author with its article count.
func (s *AuthorService) ListWithStats(ctx context.Context) ([]AuthorWithStatsDTO, error) {
	authors, err := s.authors.ListWithArticleCounts(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]AuthorWithStatsDTO, 0, len(authors))
	for i := range authors {
		dtos = append(dtos, AuthorWithStatsDTO{
			AuthorDTO:    newAuthorDTO(&authors[i].Author),
			ArticleCount: authors[i].ArticleCount,
		})
	}
	return dtos, nil
}

// validateAuthorFields collects every field violation for the author input.
func validateAuthorFields(firstName, lastName string) []string {
	var errs []string
	errs = append(errs, domain.ValidateName(firstName, "first_name")...)
	errs = append(errs, domain.ValidateName(lastName, "last_name")...)
	return errs
}
