package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	tags     []string
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Stats(_ context.Context, _ string, _ domain.SearchOptions) (domain.SearchStats, error) {
	return domain.SearchStats{Total: len(m.results)}, m.err
}

func (m *mockSearchService) Tags(_ context.Context) ([]string, error) {
	return m.tags, m.err
}

func (m *mockSearchService) Rebuild(_ context.Context) error {
	return m.err
}

// mockCatalogueService is a mock implementation of driving.CatalogueService.
type mockCatalogueService struct {
	articles map[domain.ArticleID]*domain.MultiLocaleArticle
	order    []domain.ArticleID
	err      error
}

func newMockCatalogue(articles ...*domain.MultiLocaleArticle) *mockCatalogueService {
	m := &mockCatalogueService{articles: make(map[domain.ArticleID]*domain.MultiLocaleArticle)}
	for _, a := range articles {
		m.articles[a.ID] = a
		m.order = append(m.order, a.ID)
	}
	return m
}

func (m *mockCatalogueService) Get(_ context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockCatalogueService) List(_ context.Context) ([]*domain.MultiLocaleArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.MultiLocaleArticle, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.articles[id])
	}
	return out, nil
}

func (m *mockCatalogueService) Latest(ctx context.Context, _ int) ([]*domain.MultiLocaleArticle, error) {
	return m.List(ctx)
}

func (m *mockCatalogueService) Popular(ctx context.Context, _ int) ([]*domain.MultiLocaleArticle, error) {
	return m.List(ctx)
}

func (m *mockCatalogueService) Related(_ context.Context, _ domain.ArticleID, _ int) ([]*domain.MultiLocaleArticle, error) {
	return nil, m.err
}

func (m *mockCatalogueService) ByTag(_ context.Context, _ string) ([]*domain.MultiLocaleArticle, error) {
	return nil, m.err
}

func (m *mockCatalogueService) CorpusStats(_ context.Context) (domain.CorpusStats, error) {
	return domain.CorpusStats{TotalArticles: len(m.articles)}, m.err
}

func (m *mockCatalogueService) Failures() []domain.LoadFailure {
	return nil
}

// mockCompareService is a mock implementation of driving.CompareService.
type mockCompareService struct {
	comparison *domain.Comparison
	err        error
	left       domain.Locale
	right      domain.Locale
}

func (m *mockCompareService) Compare(
	_ context.Context,
	_ domain.ArticleID,
	left, right domain.Locale,
) (*domain.Comparison, error) {
	m.left, m.right = left, right
	return m.comparison, m.err
}

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	article *domain.MultiLocaleArticle
	err     error
	loads   int
}

func (m *mockArticleService) Load(_ context.Context, _ domain.ArticleID, _ []domain.Locale) (*domain.MultiLocaleArticle, error) {
	m.loads++
	return m.article, m.err
}

func (m *mockArticleService) LoadAll(_ context.Context) ([]*domain.MultiLocaleArticle, []domain.LoadFailure, error) {
	return nil, nil, m.err
}

func (m *mockArticleService) AvailableLocales(_ context.Context, _ domain.ArticleID) ([]domain.Locale, error) {
	return nil, m.err
}

func (m *mockArticleService) Exists(_ context.Context, _ domain.ArticleID) (bool, error) {
	return m.article != nil, m.err
}

func (m *mockArticleService) Invalidate(_ context.Context) error {
	return m.err
}

// testArticle returns an article with Japanese and English content.
func testArticle(id domain.ArticleID) *domain.MultiLocaleArticle {
	a := &domain.MultiLocaleArticle{
		ID:          id,
		PublishDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Featured:    true,
		Author:      domain.DefaultAuthor(),
		RelatedIDs:  []domain.ArticleID{"grammar"},
	}
	a.Title.Set(domain.LocaleJA, "日本の米")
	a.Title.Set(domain.LocaleEN, "Rice in Japan")
	a.Excerpt.Set(domain.LocaleEN, "Rice is the staple food...")
	a.Body.Set(domain.LocaleJA, domain.RenderedContent{HTML: "<h1 id=\"heading-0\">日本の米</h1>"})
	a.Body.Set(domain.LocaleEN, domain.RenderedContent{HTML: "<h1 id=\"heading-0\">Rice in Japan</h1>"})
	a.Available.Set(domain.LocaleJA, true)
	a.Available.Set(domain.LocaleEN, true)
	a.Tags.Set(domain.LocaleEN, []string{"food", "culture"})
	a.TableOfContents.Set(domain.LocaleEN, domain.TocTree{{ID: "heading-0", Level: 1, Title: "Rice in Japan"}})
	a.ReadingTimeMinutes.Set(domain.LocaleEN, 2)
	for _, l := range []domain.Locale{domain.LocaleZhTW, domain.LocaleZhCN} {
		a.Title.Set(l, domain.UntitledTitle(l))
	}
	return a
}
