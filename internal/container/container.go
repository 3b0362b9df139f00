// Package container wires repositories and services over a single database
// handle. A container is built per request around the request's transaction,
// so every collaborator resolved from it shares that transaction.
package container

import (
	"github.com/rs/zerolog"

	"github.com/pressroom/article-service/internal/database"
	"github.com/pressroom/article-service/internal/repository"
	"github.com/pressroom/article-service/internal/service"
)

// Container lazily constructs repositories and services over one DBTX.
// Each component is built on first use and memoized for the container's
// lifetime. Containers are not safe for concurrent use; build one per
// request.
type Container struct {
	db     database.DBTX
	logger zerolog.Logger

	authorRepo  repository.AuthorRepository
	regionRepo  repository.RegionRepository
	articleRepo repository.ArticleRepository

	authorService  *service.AuthorService
	regionService  *service.RegionService
	articleService *service.ArticleService
}

// New creates a container over the given database handle. The handle may be
// a pool, a single connection, or an open transaction.
func New(db database.DBTX, logger zerolog.Logger) *Container {
	return &Container{db: db, logger: logger}
}

// Logger returns the logger the container was built with.
func (c *Container) Logger() zerolog.Logger {
	return c.logger
}

// AuthorRepository returns the memoized author repository.
func (c *Container) AuthorRepository() repository.AuthorRepository {
	if c.authorRepo == nil {
		c.authorRepo = repository.NewPgAuthorRepository(c.db)
	}
	return c.authorRepo
}

// RegionRepository returns the memoized region repository.
func (c *Container) RegionRepository() repository.RegionRepository {
	if c.regionRepo == nil {
		c.regionRepo = repository.NewPgRegionRepository(c.db)
	}
	return c.regionRepo
}

// ArticleRepository returns the memoized article repository.
func (c *Container) ArticleRepository() repository.ArticleRepository {
	if c.articleRepo == nil {
		c.articleRepo = repository.NewPgArticleRepository(c.db)
	}
	return c.articleRepo
}

// AuthorService returns the memoized author service.
func (c *Container) AuthorService() *service.AuthorService {
	if c.authorService == nil {
		c.authorService = service.NewAuthorService(c.AuthorRepository())
	}
	return c.authorService
}

// RegionService returns the memoized region service.
func (c *Container) RegionService() *service.RegionService {
	if c.regionService == nil {
		c.regionService = service.NewRegionService(c.RegionRepository())
	}
	return c.regionService
}

// ArticleService returns the memoized article service.
func (c *Container) ArticleService() *service.ArticleService {
	if c.articleService == nil {
		c.articleService = service.NewArticleService(
			c.ArticleRepository(),
			c.AuthorRepository(),
			c.RegionRepository(),
		)
	}
	return c.articleService
}

// ClearCache drops every memoized component. The next accessor call rebuilds
// it over the same database handle.
func (c *Container) ClearCache() {
	c.authorRepo = nil
	c.regionRepo = nil
	c.articleRepo = nil
	c.authorService = nil
	c.regionService = nil
	c.articleService = nil
}
