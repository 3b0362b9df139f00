// Package service implements the business use cases of the article service.
// Each exported method orchestrates one or more repositories, applies the
// business rules for one operation, and shapes the response representation.
// Services never commit or roll back; they run inside the transaction owned
// by the HTTP unit-of-work wrapper.
package service

import (
	"time"

	"github.com/pressroom/article-service/internal/domain"
)

// AuthorDTO is the JSON representation of an author. FullName is derived
// from the name fields at serialization time and never stored.
type AuthorDTO struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorWithStatsDTO is an author together with its article count.
type AuthorWithStatsDTO struct {
	AuthorDTO
	ArticleCount int `json:"article_count"`
}

// RegionDTO is the JSON representation of a region.
type RegionDTO struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleDTO is the JSON representation of an article with its embedded
// relationships. Author is null when the article has no author; Regions is
// always present, an empty array when no regions are associated.
type ArticleDTO struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	AuthorID  *int64      `json:"author_id"`
	Author    *AuthorDTO  `json:"author"`
	Regions   []RegionDTO `json:"regions"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newAuthorDTO(a *domain.Author) AuthorDTO {
	return AuthorDTO{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func newAuthorDTOs(authors []domain.Author) []AuthorDTO {
	dtos := make([]AuthorDTO, 0, len(authors))
	for i := range authors {
		dtos = append(dtos, newAuthorDTO(&authors[i]))
	}
	return dtos
}

func newRegionDTO(r *domain.Region) RegionDTO {
	return RegionDTO{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newRegionDTOs(regions []domain.Region) []RegionDTO {
	dtos := make([]RegionDTO, 0, len(regions))
	for i := range regions {
		dtos = append(dtos, newRegionDTO(&regions[i]))
	}
	return dtos
}

func newArticleDTO(a *domain.ArticleWithRelations) ArticleDTO {
	dto := ArticleDTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		AuthorID:  a.AuthorID,
		Regions:   newRegionDTOs(a.Regions),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Author != nil {
		author := newAuthorDTO(a.Author)
		dto.Author = &author
	}
	return dto
}

func newArticleDTOs(articles []domain.ArticleWithRelations) []ArticleDTO {
	dtos := make([]ArticleDTO, 0, len(articles))
	for i := range articles {
		dtos = append(dtos, newArticleDTO(&articles[i]))
	}
	return dtos
}
