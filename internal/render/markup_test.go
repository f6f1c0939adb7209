package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

func captionsFixture() CaptionTable {
	var cat domain.Localized[string]
	cat.Set(domain.LocaleJA, "眠る猫")
	cat.Set(domain.LocaleEN, "A sleeping cat")
	return CaptionTable{"cat.png": cat}
}

func TestMarkup_HeadingIDs(t *testing.T) {
	src := "# Intro\n\ntext\n\n## Intro\n\n### Details\n\n## Intro\n"

	out, err := NewMarkup().Convert(Env{ArticleID: "post"}, []byte(src))
	require.NoError(t, err)

	assert.Contains(t, out.Content.HTML, `<h1 id="heading-0">Intro</h1>`)
	assert.Contains(t, out.Content.HTML, `<h2 id="heading-1">Intro</h2>`)
	assert.Contains(t, out.Content.HTML, `<h3 id="heading-2">Details</h3>`)
	assert.Contains(t, out.Content.HTML, `<h2 id="heading-3">Intro</h2>`)

	require.Len(t, out.TOC, 4)
	levels := make([]int, 0, len(out.TOC))
	ids := make(map[string]bool)
	for _, e := range out.TOC {
		levels = append(levels, e.Level)
		ids[e.ID] = true
	}
	assert.Equal(t, []int{1, 2, 3, 2}, levels)
	assert.Len(t, ids, 4, "ids must be unique even with duplicate titles")
}

func TestMarkup_HeadingTitleFlattensInlineMarkup(t *testing.T) {
	out, err := NewMarkup().Convert(Env{}, []byte("## Using `go test` **well**\n"))
	require.NoError(t, err)
	require.Len(t, out.TOC, 1)
	assert.Equal(t, "Using go test well", out.TOC[0].Title)
}

func TestMarkup_LocalImageBecomesFigure(t *testing.T) {
	env := Env{ArticleID: "cats", Locale: domain.LocaleEN, Captions: captionsFixture()}

	out, err := NewMarkup().Convert(env, []byte("![cat](cat.png)\n"))
	require.NoError(t, err)

	html := out.Content.HTML
	assert.Contains(t, html, `<figure class="media-block" data-image-component="true" data-post-slug="cats" data-filename="cat.png" data-alt="A sleeping cat">`)
	assert.Contains(t, html, `<img src="/images/blog/cats/cat.png" alt="A sleeping cat" width="800" height="600"`)
	assert.Contains(t, html, `<figcaption>A sleeping cat</figcaption>`)
	assert.NotContains(t, html, "<p>")

	require.Len(t, out.Content.Media, 1)
	block := out.Content.Media[0]
	assert.Equal(t, "cat.png", block.Filename)
	assert.Equal(t, "眠る猫", block.Alt.Get(domain.LocaleJA))
	assert.Equal(t, "cat", block.Alt.Get(domain.LocaleZhTW), "locales without a caption fall back to the markup alt")
}

func TestMarkup_ImageWithoutCaptionEntryUsesFilename(t *testing.T) {
	out, err := NewMarkup().Convert(Env{ArticleID: "p", Locale: domain.LocaleJA}, []byte("![](images/dog.jpg)\n"))
	require.NoError(t, err)

	require.Len(t, out.Content.Media, 1)
	assert.Equal(t, "dog.jpg", out.Content.Media[0].Alt.Get(domain.LocaleJA))
	assert.Contains(t, out.Content.HTML, `data-alt="dog.jpg"`)
	assert.Contains(t, out.Content.HTML, `src="/images/blog/p/dog.jpg"`)
}

func TestMarkup_RemoteImagePassesThrough(t *testing.T) {
	out, err := NewMarkup().Convert(Env{ArticleID: "p"}, []byte("![x](https://example.com/a.png)\n"))
	require.NoError(t, err)

	assert.Contains(t, out.Content.HTML, `<img src="https://example.com/a.png" alt="x">`)
	assert.Empty(t, out.Content.Media)
}

func TestMarkup_InlineImage(t *testing.T) {
	out, err := NewMarkup().Convert(Env{ArticleID: "p"}, []byte("See ![icon](icon.png) here\n"))
	require.NoError(t, err)

	assert.Contains(t, out.Content.HTML, "<p>See ")
	assert.Contains(t, out.Content.HTML, `<span class="media-inline" data-image-component="true" data-post-slug="p" data-filename="icon.png"`)
	assert.NotContains(t, out.Content.HTML, "<figure")
}

func TestMarkup_MarkersRemoved(t *testing.T) {
	out, err := NewMarkup().Convert(Env{}, []byte("<!-- s1 --># Title\n\n<!-- s2 -->Body text.\n"))
	require.NoError(t, err)

	assert.Contains(t, out.Content.HTML, `<h1 id="heading-0">Title</h1>`)
	assert.Contains(t, out.Content.HTML, "<p>Body text.</p>")
	assert.NotContains(t, out.Content.HTML, "s1")
}

func TestMarkup_Deterministic(t *testing.T) {
	src := []byte(strings.Repeat("## Part\n\n![a](a.png) text ![b](https://x.test/b.png)\n\n", 5))
	env := Env{ArticleID: "p", Locale: domain.LocaleJA, Captions: captionsFixture()}
	m := NewMarkup()

	first, err := m.Convert(env, src)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := m.Convert(env, src)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		dest string
		want bool
	}{
		{"https://example.com/a.png", true},
		{"http://example.com/a.png", true},
		{"//cdn.example.com/a.png", true},
		{"data:image/png;base64,AAAA", true},
		{"a.png", false},
		{"./images/a.png", false},
		{"/images/a.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.dest))
		})
	}
}
