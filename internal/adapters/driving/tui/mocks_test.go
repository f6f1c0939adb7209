package tui

import (
	"context"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

type mockSearch struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearch) Search(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return m.results, m.err
}

func (m *mockSearch) Stats(context.Context, string, domain.SearchOptions) (domain.SearchStats, error) {
	return domain.SearchStats{}, nil
}

func (m *mockSearch) Tags(context.Context) ([]string, error) { return nil, nil }

func (m *mockSearch) Rebuild(context.Context) error { return nil }

type mockCatalogue struct {
	articles map[domain.ArticleID]*domain.MultiLocaleArticle
	stats    domain.CorpusStats
	err      error
}

func (m *mockCatalogue) Get(_ context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error) {
	if a, ok := m.articles[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogue) List(context.Context) ([]*domain.MultiLocaleArticle, error) { return nil, nil }

func (m *mockCatalogue) Latest(context.Context, int) ([]*domain.MultiLocaleArticle, error) {
	return nil, nil
}

func (m *mockCatalogue) Popular(context.Context, int) ([]*domain.MultiLocaleArticle, error) {
	return nil, nil
}

func (m *mockCatalogue) Related(context.Context, domain.ArticleID, int) ([]*domain.MultiLocaleArticle, error) {
	return nil, nil
}

func (m *mockCatalogue) ByTag(context.Context, string) ([]*domain.MultiLocaleArticle, error) {
	return nil, nil
}

func (m *mockCatalogue) CorpusStats(context.Context) (domain.CorpusStats, error) {
	return m.stats, m.err
}

func (m *mockCatalogue) Failures() []domain.LoadFailure { return nil }

type mockCompare struct{}

func (mockCompare) Compare(_ context.Context, id domain.ArticleID, left, right domain.Locale) (*domain.Comparison, error) {
	return &domain.Comparison{
		ArticleID: id,
		Left:      left,
		Right:     right,
		Title:     [2]string{"日本の米", "Rice in Japan"},
		Rows:      []domain.AlignedRow{{MarkerID: "s1", LeftText: "米", RightText: "Rice"}},
	}, nil
}

func rice() *domain.MultiLocaleArticle {
	a := &domain.MultiLocaleArticle{ID: "rice"}
	a.Title.Set(domain.LocaleJA, "日本の米")
	a.Title.Set(domain.LocaleEN, "Rice in Japan")
	a.Sources.Set(domain.LocaleJA, "米は主食です。")
	a.Sources.Set(domain.LocaleEN, "Rice is a staple.")
	a.Available.Set(domain.LocaleJA, true)
	a.Available.Set(domain.LocaleEN, true)
	return a
}
