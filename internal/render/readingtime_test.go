package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		locale domain.Locale
		want   int
	}{
		{"empty is one minute", "", domain.LocaleEN, 1},
		{"200 english words", strings.Repeat("word ", 200), domain.LocaleEN, 1},
		{"201 english words", strings.Repeat("word ", 201), domain.LocaleEN, 2},
		{"400 japanese chars", strings.Repeat("あ", 400), domain.LocaleJA, 1},
		{"401 japanese chars", strings.Repeat("あ", 401), domain.LocaleJA, 2},
		{"301 chinese chars", strings.Repeat("字", 301), domain.LocaleZhCN, 2},
		{"300 traditional chars", strings.Repeat("字", 300), domain.LocaleZhTW, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadingTime(tt.markup, tt.locale))
		})
	}
}

func TestEstimateReadingTime_IgnoresMarkup(t *testing.T) {
	words := strings.Repeat("word ", 200)
	code := "```go\n" + strings.Repeat("token ", 500) + "\n```\n"

	assert.Equal(t, 1, EstimateReadingTime(code+words, domain.LocaleEN))
	assert.Equal(t, 1, EstimateReadingTime("## "+words+"![img](a.png)", domain.LocaleEN))
}

func TestEstimateReadingTime_Monotonic(t *testing.T) {
	for _, locale := range domain.AllLocales() {
		prev := 0
		text := ""
		for i := 0; i < 50; i++ {
			text += "some words 日本語 "
			got := EstimateReadingTime(strings.Repeat(text, 10), locale)
			assert.GreaterOrEqual(t, got, prev, "locale %s step %d", locale, i)
			prev = got
		}
	}
}

func TestStripMarkup(t *testing.T) {
	src := "# Title\n\nSome **bold** and *em* with `code` and [a link](http://x).\n\n![img](a.png)\n<!-- s1 -->- item\n1. step"
	got := StripMarkup(src)

	assert.Equal(t, "Title\n\nSome bold and em with  and a link.\n\nitem\nstep", got)
}
