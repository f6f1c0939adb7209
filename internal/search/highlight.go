package search

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FragmentRunes is the approximate length of a windowed highlight.
const FragmentRunes = 160

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
	ellipsis  = "…"
)

// Highlighter marks literal, case-insensitive occurrences of a query.
// It never repeats fuzzy matching: a field matched only fuzzily has no
// highlight.
type Highlighter struct {
	re *regexp.Regexp
}

// NewHighlighter creates a highlighter for query.
func NewHighlighter(query string) *Highlighter {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Highlighter{}
	}
	return &Highlighter{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))}
}

// Highlight returns value, HTML-escaped, with every occurrence wrapped in
// <mark>. When window is set and value is long, only a fragment around the
// first occurrence is returned. ok is false when nothing matched.
func (h *Highlighter) Highlight(value string, window bool) (string, bool) {
	if h.re == nil {
		return "", false
	}
	locs := h.re.FindAllStringIndex(value, -1)
	if len(locs) == 0 {
		return "", false
	}

	start, end := 0, len(value)
	if window && utf8.RuneCountInString(value) > FragmentRunes {
		start, end = fragmentBounds(value, locs[0][0], locs[0][1])
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	pos := start
	for _, loc := range locs {
		if loc[0] < start || loc[1] > end {
			continue
		}
		b.WriteString(html.EscapeString(value[pos:loc[0]]))
		b.WriteString(markOpen)
		b.WriteString(html.EscapeString(value[loc[0]:loc[1]]))
		b.WriteString(markClose)
		pos = loc[1]
	}
	b.WriteString(html.EscapeString(value[pos:end]))
	if end < len(value) {
		b.WriteString(ellipsis)
	}
	return b.String(), true
}

// fragmentBounds returns byte offsets of a window of about FragmentRunes
// runes around [matchStart, matchEnd), aligned to rune boundaries.
func fragmentBounds(value string, matchStart, matchEnd int) (int, int) {
	before := FragmentRunes / 3
	start := matchStart
	for i := 0; i < before && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(value[:start])
		start -= size
	}

	remaining := FragmentRunes - utf8.RuneCountInString(value[start:matchEnd])
	end := matchEnd
	for i := 0; i < remaining && end < len(value); i++ {
		_, size := utf8.DecodeRuneInString(value[end:])
		end += size
	}
	return start, end
}
