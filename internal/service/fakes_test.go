package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pressroom/article-service/internal/domain"
)

// In-memory repository fakes. They implement the persistence interfaces over
// plain maps so service behavior can be exercised without a database.

type fakeAuthorRepo struct {
	authors       map[int64]domain.Author
	articleCounts map[int64]int
	nextID        int64
	err           error
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[int64]domain.Author), nextID: 1}
}

func (f *fakeAuthorRepo) seed(firstName, lastName string) domain.Author {
	now := time.Now().UTC()
	a := domain.Author{ID: f.nextID, FirstName: firstName, LastName: lastName, CreatedAt: now, UpdatedAt: now}
	f.authors[a.ID] = a
	f.nextID++
	return a
}

func (f *fakeAuthorRepo) sorted() []domain.Author {
	ids := make([]int64, 0, len(f.authors))
	for id := range f.authors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Author, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.authors[id])
	}
	return out
}

func (f *fakeAuthorRepo) GetAll(context.Context) ([]domain.Author, error) {
	return f.sorted(), f.err
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id int64) (*domain.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.authors[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeAuthorRepo) Exists(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.authors[id]
	return ok, nil
}

func (f *fakeAuthorRepo) Count(context.Context) (int, error) {
	return len(f.authors), f.err
}

func (f *fakeAuthorRepo) Create(_ context.Context, firstName, lastName string) (*domain.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	a := f.seed(firstName, lastName)
	return &a, nil
}

func (f *fakeAuthorRepo) Update(_ context.Context, id int64, firstName, lastName string) (*domain.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.authors[id]
	if !ok {
		return nil, nil
	}
	a.FirstName = firstName
	a.LastName = lastName
	a.UpdatedAt = time.Now().UTC()
	f.authors[id] = a
	return &a, nil
}

func (f *fakeAuthorRepo) Delete(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.authors[id]; !ok {
		return false, nil
	}
	delete(f.authors, id)
	return true, nil
}

func (f *fakeAuthorRepo) Search(_ context.Context, term string) ([]domain.Author, error) {
	var out []domain.Author
	for _, a := range f.sorted() {
		if authorMatches(a, term) {
			out = append(out, a)
		}
	}
	return out, f.err
}

func (f *fakeAuthorRepo) ListPaginated(_ context.Context, offset, limit int) ([]domain.Author, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.sorted()
	return pageOf(all, offset, limit), len(all), nil
}

func (f *fakeAuthorRepo) SearchPaginated(_ context.Context, term string, offset, limit int) ([]domain.Author, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []domain.Author
	for _, a := range f.sorted() {
		if authorMatches(a, term) {
			matched = append(matched, a)
		}
	}
	return pageOf(matched, offset, limit), len(matched), nil
}

func (f *fakeAuthorRepo) CountArticles(_ context.Context, authorID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	if f.articleCounts != nil {
		count = f.articleCounts[authorID]
	}
	return count, nil
}

func (f *fakeAuthorRepo) ListWithArticleCounts(context.Context) ([]domain.AuthorWithStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.AuthorWithStats
	for _, a := range f.sorted() {
		count := 0
		if f.articleCounts != nil {
			count = f.articleCounts[a.ID]
		}
		out = append(out, domain.AuthorWithStats{Author: a, ArticleCount: count})
	}
	return out, nil
}

func authorMatches(a domain.Author, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.FirstName), term) ||
		strings.Contains(strings.ToLower(a.LastName), term)
}

type fakeRegionRepo struct {
	regions map[int64]domain.Region
	nextID  int64
	err     error
}

func newFakeRegionRepo() *fakeRegionRepo {
	return &fakeRegionRepo{regions: make(map[int64]domain.Region), nextID: 1}
}

func (f *fakeRegionRepo) seed(code, name string) domain.Region {
	now := time.Now().UTC()
	r := domain.Region{ID: f.nextID, Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
	f.regions[r.ID] = r
	f.nextID++
	return r
}

func (f *fakeRegionRepo) sorted() []domain.Region {
	ids := make([]int64, 0, len(f.regions))
	for id := range f.regions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Region, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.regions[id])
	}
	return out
}

func (f *fakeRegionRepo) GetAll(context.Context) ([]domain.Region, error) {
	return f.sorted(), f.err
}

func (f *fakeRegionRepo) GetByID(_ context.Context, id int64) (*domain.Region, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.regions[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRegionRepo) GetByCode(_ context.Context, code string) (*domain.Region, error) {
	if f.err != nil {
		return nil, f.err
	}
	code = domain.NormalizeRegionCode(code)
	for _, r := range f.regions {
		if r.Code == code {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRegionRepo) Exists(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.regions[id]
	return ok, nil
}

func (f *fakeRegionRepo) Count(context.Context) (int, error) {
	return len(f.regions), f.err
}

func (f *fakeRegionRepo) Create(_ context.Context, code, name string) (*domain.Region, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := f.seed(code, name)
	return &r, nil
}

func (f *fakeRegionRepo) Update(_ context.Context, id int64, code, name string) (*domain.Region, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.regions[id]
	if !ok {
		return nil, nil
	}
	r.Code = code
	r.Name = name
	r.UpdatedAt = time.Now().UTC()
	f.regions[id] = r
	return &r, nil
}

func (f *fakeRegionRepo) Delete(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.regions[id]; !ok {
		return false, nil
	}
	delete(f.regions, id)
	return true, nil
}

func (f *fakeRegionRepo) SearchByName(_ context.Context, term string) ([]domain.Region, error) {
	var out []domain.Region
	for _, r := range f.sorted() {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(term)) {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeRegionRepo) ListPaginated(_ context.Context, offset, limit int) ([]domain.Region, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.sorted()
	return pageOf(all, offset, limit), len(all), nil
}

func (f *fakeRegionRepo) SearchPaginated(_ context.Context, term string, offset, limit int) ([]domain.Region, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	matched, _ := f.SearchByName(context.Background(), term)
	return pageOf(matched, offset, limit), len(matched), nil
}

type fakeArticleRepo struct {
	articles map[int64]domain.Article
	links    map[int64][]int64
	authors  *fakeAuthorRepo
	regions  *fakeRegionRepo
	nextID   int64
	err      error
}

func newFakeArticleRepo(authors *fakeAuthorRepo, regions *fakeRegionRepo) *fakeArticleRepo {
	return &fakeArticleRepo{
		articles: make(map[int64]domain.Article),
		links:    make(map[int64][]int64),
		authors:  authors,
		regions:  regions,
		nextID:   1,
	}
}

func (f *fakeArticleRepo) sorted() []domain.Article {
	ids := make([]int64, 0, len(f.articles))
	for id := range f.articles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.articles[id])
	}
	return out
}

func (f *fakeArticleRepo) withRelations(a domain.Article) domain.ArticleWithRelations {
	full := domain.ArticleWithRelations{Article: a, Regions: make([]domain.Region, 0)}
	if a.AuthorID != nil {
		if author, ok := f.authors.authors[*a.AuthorID]; ok {
			full.Author = &author
		}
	}
	for _, regionID := range f.links[a.ID] {
		if region, ok := f.regions.regions[regionID]; ok {
			full.Regions = append(full.Regions, region)
		}
	}
	return full
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.articles[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeArticleRepo) GetByIDWithRelations(_ context.Context, id int64) (*domain.ArticleWithRelations, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	full := f.withRelations(a)
	return &full, nil
}

func (f *fakeArticleRepo) Exists(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.articles[id]
	return ok, nil
}

func (f *fakeArticleRepo) Count(context.Context) (int, error) {
	return len(f.articles), f.err
}

func (f *fakeArticleRepo) CreateWithRegions(_ context.Context, title, content string, authorID *int64, regionIDs []int64) (*domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now().UTC()
	a := domain.Article{ID: f.nextID, Title: title, Content: content, AuthorID: authorID, CreatedAt: now, UpdatedAt: now}
	f.articles[a.ID] = a
	f.links[a.ID] = append([]int64(nil), regionIDs...)
	f.nextID++
	return &a, nil
}

func (f *fakeArticleRepo) Update(_ context.Context, id int64, title, content string, authorID *int64) (*domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	a.Title = title
	a.Content = content
	a.AuthorID = authorID
	a.UpdatedAt = time.Now().UTC()
	f.articles[id] = a
	return &a, nil
}

func (f *fakeArticleRepo) ReplaceRegions(_ context.Context, articleID int64, regionIDs []int64) error {
	if f.err != nil {
		return f.err
	}
	f.links[articleID] = append([]int64(nil), regionIDs...)
	return nil
}

func (f *fakeArticleRepo) Delete(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.articles[id]; !ok {
		return false, nil
	}
	delete(f.articles, id)
	delete(f.links, id)
	return true, nil
}

func (f *fakeArticleRepo) ListPaginated(_ context.Context, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.sorted()
	return f.relationsPage(all, offset, limit), len(all), nil
}

func (f *fakeArticleRepo) ListByAuthorPaginated(_ context.Context, authorID int64, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []domain.Article
	for _, a := range f.sorted() {
		if a.AuthorID != nil && *a.AuthorID == authorID {
			matched = append(matched, a)
		}
	}
	return f.relationsPage(matched, offset, limit), len(matched), nil
}

func (f *fakeArticleRepo) ListByRegionPaginated(_ context.Context, regionID int64, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []domain.Article
	for _, a := range f.sorted() {
		for _, linked := range f.links[a.ID] {
			if linked == regionID {
				matched = append(matched, a)
				break
			}
		}
	}
	return f.relationsPage(matched, offset, limit), len(matched), nil
}

func (f *fakeArticleRepo) SearchPaginated(_ context.Context, term string, offset, limit int) ([]domain.ArticleWithRelations, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	term = strings.ToLower(term)
	var matched []domain.Article
	for _, a := range f.sorted() {
		if strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Content), term) {
			matched = append(matched, a)
		}
	}
	return f.relationsPage(matched, offset, limit), len(matched), nil
}

func (f *fakeArticleRepo) relationsPage(articles []domain.Article, offset, limit int) []domain.ArticleWithRelations {
	page := pageOf(articles, offset, limit)
	out := make([]domain.ArticleWithRelations, 0, len(page))
	for _, a := range page {
		out = append(out, f.withRelations(a))
	}
	return out
}

func pageOf[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
