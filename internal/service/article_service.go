package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pressroom/article-service/internal/domain"
	"github.com/pressroom/article-service/internal/pagination"
	"github.com/pressroom/article-service/internal/repository"
)

// ArticleInput carries the writable article fields for create and update.
// AuthorID is optional; RegionIDs replace the article's region set as a whole.
type ArticleInput struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	AuthorID  *int64  `json:"author_id"`
	RegionIDs []int64 `json:"region_ids"`
}

// ArticleFilter narrows an article listing. At most one filter applies per
// request: an author takes precedence over a region, a region over a search
// term.
type ArticleFilter struct {
	AuthorID *int64
	RegionID *int64
}

// ArticleService implements article business use cases.
type ArticleService struct {
	articles repository.ArticleRepository
	authors  repository.AuthorRepository
	regions  repository.RegionRepository
}

// NewArticleService creates a new article service.
func NewArticleService(
	articles repository.ArticleRepository,
	authors repository.AuthorRepository,
	regions repository.RegionRepository,
) *ArticleService {
	return &ArticleService{articles: articles, authors: authors, regions: regions}
}

// List returns one page of articles with author and regions eagerly loaded.
// Filtering by a nonexistent author or region is a validation error, not an
// empty page.
func (s *ArticleService) List(ctx context.Context, p pagination.Params, filter ArticleFilter) ([]ArticleDTO, int, error) {
	var (
		articles []domain.ArticleWithRelations
		total    int
		err      error
	)

	switch {
	case filter.AuthorID != nil:
		exists, aerr := s.authors.Exists(ctx, *filter.AuthorID)
		if aerr != nil {
			return nil, 0, aerr
		}
		if !exists {
			return nil, 0, domain.NewValidationError(
				fmt.Sprintf("author with id %d does not exist", *filter.AuthorID))
		}
		articles, total, err = s.articles.ListByAuthorPaginated(ctx, *filter.AuthorID, p.Offset(), p.Limit)
	case filter.RegionID != nil:
		exists, rerr := s.regions.Exists(ctx, *filter.RegionID)
		if rerr != nil {
			return nil, 0, rerr
		}
		if !exists {
			return nil, 0, domain.NewValidationError(
				fmt.Sprintf("region with id %d does not exist", *filter.RegionID))
		}
		articles, total, err = s.articles.ListByRegionPaginated(ctx, *filter.RegionID, p.Offset(), p.Limit)
	case p.Search != "":
		articles, total, err = s.articles.SearchPaginated(ctx, p.Search, p.Offset(), p.Limit)
	default:
		articles, total, err = s.articles.ListPaginated(ctx, p.Offset(), p.Limit)
	}
	if err != nil {
		return nil, 0, err
	}

	return newArticleDTOs(articles), total, nil
}

// Get returns the article with the given id, author and regions included.
func (s *ArticleService) Get(ctx context.Context, id int64) (*ArticleDTO, error) {
	article, err := s.articles.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.NewNotFoundError("article", id)
	}

	dto := newArticleDTO(article)
	return &dto, nil
}

// Create validates the input and inserts a new article together with its
// region links. Field and referential violations are collected into a single
// validation error before anything is written, so a bad request never leaves
// a partial article behind.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*ArticleDTO, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	errs := validateArticleFields(title, content, in.RegionIDs)
	refErrs, err := s.validateReferences(ctx, in.AuthorID, in.RegionIDs)
	if err != nil {
		return nil, err
	}
	errs = append(errs, refErrs...)
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	created, err := s.articles.CreateWithRegions(ctx, title, content, in.AuthorID, in.RegionIDs)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.GetByIDWithRelations(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.NewNotFoundError("article", created.ID)
	}

	dto := newArticleDTO(article)
	return &dto, nil
}

// Update validates the input and modifies an existing article, replacing its
// region set with the one given.
func (s *ArticleService) Update(ctx context.Context, id int64, in ArticleInput) (*ArticleDTO, error) {
	exists, err := s.articles.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("article", id)
	}

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	errs := validateArticleFields(title, content, in.RegionIDs)
	refErrs, err := s.validateReferences(ctx, in.AuthorID, in.RegionIDs)
	if err != nil {
		return nil, err
	}
	errs = append(errs, refErrs...)
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	if _, err := s.articles.Update(ctx, id, title, content, in.AuthorID); err != nil {
		return nil, err
	}
	if err := s.articles.ReplaceRegions(ctx, id, in.RegionIDs); err != nil {
		return nil, err
	}

	article, err := s.articles.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.NewNotFoundError("article", id)
	}

	dto := newArticleDTO(article)
	return &dto, nil
}

// Delete removes an article and its region links.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("article", id)
	}
	return nil
}

// validateReferences checks that the referenced author and every referenced
// region exist, collecting one message per missing reference.
func (s *ArticleService) validateReferences(ctx context.Context, authorID *int64, regionIDs []int64) ([]string, error) {
	var errs []string

	if authorID != nil {
		exists, err := s.authors.Exists(ctx, *authorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs = append(errs, fmt.Sprintf("author with id %d does not exist", *authorID))
		}
	}

	for _, regionID := range regionIDs {
		exists, err := s.regions.Exists(ctx, regionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs = append(errs, fmt.Sprintf("region with id %d does not exist", regionID))
		}
	}

	return errs, nil
}

// validateArticleFields collects every syntactic violation for the article
// input.
func validateArticleFields(title, content string, regionIDs []int64) []string {
	var errs []string
	errs = append(errs, domain.ValidateText(title, "title", domain.TitleMinLen, domain.TitleMaxLen)...)
	errs = append(errs, domain.ValidateText(content, "content", domain.ContentMinLen, 0)...)
	errs = append(errs, domain.ValidateIDList(regionIDs, "region_ids")...)
	return errs
}
