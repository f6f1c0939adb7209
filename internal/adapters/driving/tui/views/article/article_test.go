package article

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

type mockCatalogue struct {
	articles map[domain.ArticleID]*domain.MultiLocaleArticle
	err      error
}

func (m *mockCatalogue) Get(_ context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
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
	return domain.CorpusStats{}, nil
}

func (m *mockCatalogue) Failures() []domain.LoadFailure { return nil }

type mockArticles struct {
	article *domain.MultiLocaleArticle
	loads   int
}

func (m *mockArticles) Load(context.Context, domain.ArticleID, []domain.Locale) (*domain.MultiLocaleArticle, error) {
	m.loads++
	if m.article == nil {
		return nil, domain.ErrNotFound
	}
	return m.article, nil
}

func (m *mockArticles) LoadAll(context.Context) ([]*domain.MultiLocaleArticle, []domain.LoadFailure, error) {
	return nil, nil, nil
}

func (m *mockArticles) AvailableLocales(context.Context, domain.ArticleID) ([]domain.Locale, error) {
	return nil, nil
}

func (m *mockArticles) Exists(context.Context, domain.ArticleID) (bool, error) { return true, nil }

func (m *mockArticles) Invalidate(context.Context) error { return nil }

func riceArticle() *domain.MultiLocaleArticle {
	a := &domain.MultiLocaleArticle{
		ID:          "rice",
		PublishDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Author:      domain.DefaultAuthor(),
	}
	a.Title.Set(domain.LocaleJA, "日本の米")
	a.Title.Set(domain.LocaleEN, "Rice in Japan")
	a.Title.Set(domain.LocaleZhTW, "Untitled (zh-TW)")
	a.Sources.Set(domain.LocaleJA, "# 日本の米\n\n<!-- s1 -->米は主食です。")
	a.Sources.Set(domain.LocaleEN, "# Rice in Japan\n\n<!-- s1 -->Rice is a **staple**.")
	a.Available.Set(domain.LocaleJA, true)
	a.Available.Set(domain.LocaleEN, true)
	a.Tags.Set(domain.LocaleEN, []string{"food"})
	a.ReadingTimeMinutes.Set(domain.LocaleEN, 3)
	a.Warnings = []domain.LocaleWarning{{Locale: domain.LocaleEN, Kind: domain.WarningMalformedMeta, Detail: "bad date"}}
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openView(t *testing.T, v *View, id domain.ArticleID, l domain.Locale) *View {
	t.Helper()
	cmd := v.Open(id, l)
	require.True(t, v.Loading())
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func newTestView() *View {
	catalogue := &mockCatalogue{articles: map[domain.ArticleID]*domain.MultiLocaleArticle{"rice": riceArticle()}}
	v := NewView(nil, nil, catalogue, nil)
	v.SetDimensions(80, 30)
	return v
}

func TestView_OpenRendersLocale(t *testing.T) {
	v := openView(t, newTestView(), "rice", domain.LocaleEN)

	require.NoError(t, v.Err())
	assert.False(t, v.Loading())
	assert.Equal(t, domain.LocaleEN, v.ShownLocale())

	view := v.View()
	assert.Contains(t, view, "Rice in Japan")
	assert.Contains(t, view, "Rice is a staple.")
	assert.NotContains(t, view, "<!--", "markers are stripped")
	assert.Contains(t, view, "NIHONGO-AI")
	assert.Contains(t, view, "2024-10-01")
	assert.Contains(t, view, "3 min read")
	assert.Contains(t, view, "#food")
	assert.Contains(t, view, "malformed_meta: bad date")
}

func TestView_MissingLocaleFallsBack(t *testing.T) {
	v := openView(t, newTestView(), "rice", domain.LocaleZhTW)

	assert.Equal(t, domain.LocaleZhTW, v.Locale())
	assert.Equal(t, domain.LocaleEN, v.ShownLocale())
	assert.Contains(t, v.View(), "no zh-TW translation, showing en")
}

func TestView_CycleLocale(t *testing.T) {
	v := openView(t, newTestView(), "rice", domain.LocaleJA)
	assert.Contains(t, v.View(), "米は主食です。")

	v, _ = v.Update(keyRunes("l"))
	assert.Equal(t, domain.LocaleEN, v.ShownLocale())

	v, _ = v.Update(keyRunes("l"))
	assert.Equal(t, domain.LocaleJA, v.ShownLocale(), "only available locales are visited")
}

func TestView_Compare(t *testing.T) {
	v := openView(t, newTestView(), "rice", domain.LocaleJA)

	_, cmd := v.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.CompareRequested{ID: "rice", Left: domain.LocaleJA, Right: domain.LocaleEN}, cmd())

	single := riceArticle()
	single.Available.Set(domain.LocaleEN, false)
	v.Update(messages.ArticleLoaded{ID: "rice", Article: single})
	_, cmd = v.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrNotFound)
}

func TestView_FallsBackToDirectLoad(t *testing.T) {
	articles := &mockArticles{article: riceArticle()}
	v := NewView(nil, nil, &mockCatalogue{err: domain.ErrIndexNotBuilt}, articles)
	v.SetDimensions(80, 30)

	v = openView(t, v, "rice", domain.LocaleEN)
	require.NoError(t, v.Err())
	assert.Equal(t, 1, articles.loads)
	assert.Equal(t, domain.ArticleID("rice"), v.Article().ID)
}

func TestView_LoadErrors(t *testing.T) {
	v := openView(t, newTestView(), "missing", domain.LocaleEN)
	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Contains(t, v.View(), "Error:")

	v = NewView(nil, nil, &mockCatalogue{err: errors.New("disk")}, &mockArticles{})
	v = openView(t, v, "rice", domain.LocaleEN)
	assert.EqualError(t, v.Err(), "disk", "only not-found errors fall back")

	v = openView(t, NewView(nil, nil, nil, nil), "rice", domain.LocaleEN)
	assert.ErrorIs(t, v.Err(), ErrNoCatalogue)
}

func TestView_StaleLoadIgnored(t *testing.T) {
	v := newTestView()
	v.Open("rice", domain.LocaleEN)

	v.Update(messages.ArticleLoaded{ID: "other", Err: errors.New("late")})
	assert.True(t, v.Loading())
	assert.NoError(t, v.Err())
}

func TestView_Scrolling(t *testing.T) {
	long := riceArticle()
	long.Sources.Set(domain.LocaleEN, strings.Repeat("A line of text.\n\n", 40))
	catalogue := &mockCatalogue{articles: map[domain.ArticleID]*domain.MultiLocaleArticle{"rice": long}}
	v := NewView(nil, nil, catalogue, nil)
	v.SetDimensions(80, 20)
	v = openView(t, v, "rice", domain.LocaleEN)

	v, _ = v.Update(keyRunes("j"))
	assert.Equal(t, 1, v.scrollOffset)
	v, _ = v.Update(keyRunes("k"))
	v, _ = v.Update(keyRunes("k"))
	assert.Equal(t, 0, v.scrollOffset)

	v, _ = v.Update(keyRunes("G"))
	assert.Equal(t, v.maxScrollOffset(), v.scrollOffset)
	assert.Positive(t, v.scrollOffset)
	assert.Contains(t, v.View(), "[100%]")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, v.maxScrollOffset()-v.visibleLines(), v.scrollOffset)

	v, _ = v.Update(keyRunes("g"))
	assert.Equal(t, 0, v.scrollOffset)
}

func TestView_EscReturnsToSearch(t *testing.T) {
	v := newTestView()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}
