package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleID_Validate(t *testing.T) {
	tests := []struct {
		id      ArticleID
		wantErr bool
	}{
		{"hello-world", false},
		{"Hello_World", false},
		{"", true},
		{"  ", true},
		{".", true},
		{"..", true},
		{"a/b", true},
		{`a\b`, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			err := tt.id.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultAuthor(t *testing.T) {
	a := DefaultAuthor()
	for _, l := range AllLocales() {
		assert.Equal(t, "NIHONGO-AI", a.Name.Get(l))
		assert.NotEmpty(t, a.Designation.Get(l))
	}
	assert.Equal(t, "AI Assistant", a.Designation.Get(LocaleEN))
	assert.Equal(t, DefaultAuthorImage, a.Image)
}

func TestMultiLocaleArticle_AllTags(t *testing.T) {
	var a MultiLocaleArticle
	a.Tags.Set(LocaleJA, []string{"文法", "N5"})
	a.Tags.Set(LocaleEN, []string{"grammar", "N5"})

	assert.Equal(t, []string{"文法", "N5", "grammar"}, a.AllTags())
	assert.True(t, a.HasAnyTag([]string{"grammar"}))
	assert.True(t, a.HasAnyTag([]string{"x", "N5"}))
	assert.False(t, a.HasAnyTag([]string{"kanji"}))
	assert.False(t, a.HasAnyTag(nil))
}

func TestMultiLocaleArticle_AvailableLocales(t *testing.T) {
	var a MultiLocaleArticle
	a.Available.Set(LocaleZhCN, true)
	a.Available.Set(LocaleJA, true)

	assert.Equal(t, []Locale{LocaleJA, LocaleZhCN}, a.AvailableLocales())
}

func TestUntitledTitle(t *testing.T) {
	assert.Equal(t, "Untitled (zh-TW)", UntitledTitle(LocaleZhTW))
}

func TestGenerateExcerpt(t *testing.T) {
	assert.Equal(t, "line one line two...", GenerateExcerpt("line one\nline two"))

	long := strings.Repeat("あ", 200)
	got := GenerateExcerpt(long)
	assert.Equal(t, strings.Repeat("あ", ExcerptLength)+"...", got)
}

func TestTocTree_Nested(t *testing.T) {
	toc := TocTree{
		{ID: "heading-0", Level: 1, Title: "Intro"},
		{ID: "heading-1", Level: 2, Title: "Part A"},
		{ID: "heading-2", Level: 3, Title: "Detail"},
		{ID: "heading-3", Level: 2, Title: "Part B"},
		{ID: "heading-4", Level: 1, Title: "Outro"},
	}

	roots := toc.Nested()
	assert.Len(t, roots, 2)
	assert.Equal(t, "Intro", roots[0].Entry.Title)
	assert.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Detail", roots[0].Children[0].Children[0].Entry.Title)
	assert.Empty(t, roots[1].Children)
}

func TestHeadingID(t *testing.T) {
	assert.Equal(t, "heading-0", HeadingID(0))
	assert.Equal(t, "heading-12", HeadingID(12))
}

func TestMultiLocaleArticle_Partial(t *testing.T) {
	complete := &MultiLocaleArticle{ID: "a", Available: Uniform(true)}
	assert.NoError(t, complete.Partial())

	missing := &MultiLocaleArticle{ID: "b", Available: Uniform(true)}
	missing.Available.Set(LocaleZhCN, false)
	err := missing.Partial()
	assert.ErrorIs(t, err, ErrPartialContent)
	assert.Contains(t, err.Error(), "zh-CN")

	degraded := &MultiLocaleArticle{
		ID:        "c",
		Available: Uniform(true),
		Warnings:  []LocaleWarning{{Locale: LocaleEN, Kind: WarningMalformedMarkup}},
	}
	assert.ErrorIs(t, degraded.Partial(), ErrPartialContent)
}
