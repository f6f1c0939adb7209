package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

func TestBuild(t *testing.T) {
	ix := Build(corpus())

	assert.Equal(t, 5, ix.Len())
	assert.Equal(t, []string{"culture", "food", "grammar", "ops", "文法", "料理", "旅行"}, ix.Tags())

	a, ok := ix.Article("tea")
	require.True(t, ok)
	assert.Equal(t, "A bowl of tea", a.Title.Get(domain.LocaleEN))

	_, ok = ix.Article("missing")
	assert.False(t, ok)
}

func TestBuild_SkipsDuplicatesAndNil(t *testing.T) {
	c := corpus()
	ix := Build(append(c, nil, c[0]))
	assert.Equal(t, 5, ix.Len())
}

func TestBuild_DoesNotIndexFallbackTitles(t *testing.T) {
	ix := Build(corpus())
	doc := ix.docs[ix.byID["k8s"]]

	for _, f := range doc.Fields {
		assert.Equal(t, domain.LocaleEN, f.Locale, "field %s", f.Name)
	}
}

func TestSearch_GeneratedTitlesDoNotMatch(t *testing.T) {
	hello := fixture{
		id:     "hello",
		titles: localeText{domain.LocaleEN: domain.UntitledTitle(domain.LocaleEN), domain.LocaleJA: domain.UntitledTitle(domain.LocaleJA)},
		body:   localeText{domain.LocaleEN: "hello world", domain.LocaleJA: "壊れた"},
	}.build()
	hello.GeneratedTitle.Set(domain.LocaleEN, true)
	hello.GeneratedTitle.Set(domain.LocaleJA, true)
	hello.Warnings = []domain.LocaleWarning{{Locale: domain.LocaleJA, Kind: domain.WarningMalformedMarkup}}

	ix := Build([]*domain.MultiLocaleArticle{hello})

	assert.Empty(t, ix.Search("Untitled", domain.LocaleEN))

	results := ix.Search("hello", domain.LocaleEN)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].MatchedFields, "body.en")
	assert.NotContains(t, results[0].MatchedFields, "title.en")

	for _, f := range ix.docs[ix.byID["hello"]].Fields {
		assert.NotEqual(t, domain.LocaleJA, f.Locale, "malformed locale indexed as %s", f.Name)
	}
}

func TestSearch_EmptyQueryBrowsesAll(t *testing.T) {
	ix := Build(corpus())

	for _, q := range []string{"", "   ", "\t\n"} {
		results := ix.Search(q, domain.LocaleEN)
		require.Len(t, results, 5)
		assert.Equal(t, []domain.ArticleID{"rice", "k8s", "grammar", "travel", "tea"}, ids(results))
		for _, r := range results {
			assert.Zero(t, r.Score)
			assert.Empty(t, r.Highlights)
			assert.NotNil(t, r.Article)
		}
	}
}

func TestSearch_FuzzyTitleMatch(t *testing.T) {
	ix := Build(corpus())

	results := ix.Search("Kubernets", domain.LocaleEN)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ArticleID("k8s"), results[0].ArticleID)
	assert.Contains(t, results[0].MatchedFields, "title.en")
	assert.Greater(t, results[0].Score, 0.0)
	assert.LessOrEqual(t, results[0].Score, 1.0)
	assert.Empty(t, results[0].Highlights, "fuzzy-only matches are not highlighted")
}

func TestSearch_TitleOutranksBody(t *testing.T) {
	articles := []*domain.MultiLocaleArticle{
		fixture{
			id:     "body",
			titles: localeText{domain.LocaleEN: "Weekly notes"},
			body:   localeText{domain.LocaleEN: "Some rambling about many things including concurrency and other topics of the week."},
		}.build(),
		fixture{
			id:     "title",
			titles: localeText{domain.LocaleEN: "Go concurrency"},
		}.build(),
	}

	results := Build(articles).Search("concurrency", domain.LocaleEN)
	require.Len(t, results, 2)
	assert.Equal(t, domain.ArticleID("title"), results[0].ArticleID)
	assert.True(t, domain.MoreRelevant(results[0], results[1]))
}

func TestSearch_MatchedFieldsPreferLocale(t *testing.T) {
	articles := []*domain.MultiLocaleArticle{
		fixture{
			id:     "tea",
			titles: localeText{domain.LocaleEN: "Matcha", domain.LocaleJA: "Matcha"},
		}.build(),
	}

	results := Build(articles).Search("matcha", domain.LocaleEN)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"title.en", "title.ja"}, results[0].MatchedFields)
}

func TestSearch_MultilingualQuery(t *testing.T) {
	results := Build(corpus()).Search("京都", domain.LocaleJA)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ArticleID("travel"), results[0].ArticleID)
	assert.Equal(t, "<mark>京都</mark>の旅", results[0].Highlights["title.ja"])
}

func TestSearch_FullWidthQuery(t *testing.T) {
	results := Build(corpus()).Search("ＴＥＡ", domain.LocaleEN)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.ArticleID("tea"), results[0].ArticleID)
}

func TestSearch_NoMatch(t *testing.T) {
	assert.Empty(t, Build(corpus()).Search("zzzzzzzzzz", domain.LocaleEN))
}

func TestSearch_Highlights(t *testing.T) {
	articles := []*domain.MultiLocaleArticle{
		fixture{
			id:     "x",
			titles: localeText{domain.LocaleEN: "Go Concurrency <Patterns>"},
			body:   localeText{domain.LocaleEN: strings.Repeat("filler ", 60) + "concurrency" + strings.Repeat(" filler", 60)},
		}.build(),
	}

	results := Build(articles).Search("concurrency", domain.LocaleEN)
	require.Len(t, results, 1)

	assert.Equal(t, "Go <mark>Concurrency</mark> &lt;Patterns&gt;", results[0].Highlights["title.en"])
	body := results[0].Highlights["body.en"]
	assert.True(t, strings.HasPrefix(body, "…"))
	assert.True(t, strings.HasSuffix(body, "…"))
	assert.Contains(t, body, "<mark>concurrency</mark>")
}

func TestSearch_Threshold(t *testing.T) {
	articles := []*domain.MultiLocaleArticle{
		fixture{id: "x", titles: localeText{domain.LocaleEN: "abcdefghij"}}.build(),
	}

	assert.Len(t, Build(articles).Search("abcdefxxxx", domain.LocaleEN), 1)
	assert.Empty(t, Build(articles, WithThreshold(0.1)).Search("abcdefxxxx", domain.LocaleEN))
}
