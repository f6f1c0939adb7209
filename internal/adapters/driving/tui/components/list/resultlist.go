// Package list renders search results for the search view.
package list

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

// linesPerResult is the height of one entry: title, metadata, preview.
const linesPerResult = 3

// indent lines up metadata and preview under the title text.
const indent = "    "

// ResultList is a scrolling, single-selection list of results. Titles and
// previews follow the reading locale.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	locale   domain.Locale
	styles   *styles.Styles
	width    int
	height   int
}

func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, locale: domain.DefaultLocale, width: 80, height: 10}
}

func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	rows := max((r.height-2)/linesPerResult, 1)
	first := max(r.selected-rows+1, 0)
	last := min(first+rows, len(r.results))

	out := []string{r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), ""}
	for i := first; i < last; i++ {
		out = append(out, r.entry(i))
	}
	return strings.Join(out, "\n")
}

func (r *ResultList) entry(i int) string {
	res := &r.results[i]
	titleWidth := max(r.width-20, 10)
	title := truncate(Title(res, r.locale), titleWidth)
	title += strings.Repeat(" ", titleWidth-lipgloss.Width(title))
	score := fmt.Sprintf("%.2f", res.Score)

	var head string
	if i == r.selected {
		head = r.styles.Selected.Render("> " + title + "  " + score)
	} else {
		head = r.styles.Normal.Render("  "+title+"  ") + r.styles.Muted.Render(score)
	}
	return strings.Join([]string{
		head,
		r.styles.Muted.Render(indent + r.metadata(res)),
		indent + r.preview(res, max(r.width-6, 20)),
	}, "\n")
}

// metadata is "<slug>  <date>  #tag #tag  featured" with empty parts left out.
func (r *ResultList) metadata(res *domain.SearchResult) string {
	a := res.Article
	if a == nil {
		return string(res.ArticleID)
	}
	parts := []string{string(a.ID)}
	if !a.PublishDate.IsZero() {
		parts = append(parts, a.PublishDate.Format("2006-01-02"))
	}
	if tags := a.Tags.Get(r.locale); len(tags) > 0 {
		parts = append(parts, "#"+strings.Join(tags, " #"))
	}
	if a.Featured {
		parts = append(parts, "featured")
	}
	return strings.Join(parts, "  ")
}

// preview is the best highlight with its matches styled, else the excerpt.
func (r *ResultList) preview(res *domain.SearchResult, width int) string {
	if h := firstHighlight(res); h != "" {
		return r.renderMarked(h, width)
	}
	if res.Article == nil {
		return ""
	}
	excerpt, _, _ := domain.FirstNonEmpty(res.Article.Excerpt, r.locale.FallbackChain())
	return r.styles.Muted.Render(truncate(excerpt, width))
}

// renderMarked styles the <mark> spans of an HTML highlight, stopping
// once width cells are used.
func (r *ResultList) renderMarked(highlight string, width int) string {
	var b strings.Builder
	emit := func(text string, style lipgloss.Style) {
		if text == "" || width <= 0 {
			return
		}
		text = truncate(html.UnescapeString(text), width)
		width -= ansi.StringWidth(text)
		b.WriteString(style.Render(text))
	}

	head, rest, _ := strings.Cut(highlight, "<mark>")
	emit(head, r.styles.Muted)
	for rest != "" {
		marked, after, ok := strings.Cut(rest, "</mark>")
		if !ok {
			emit(rest, r.styles.Muted)
			break
		}
		emit(marked, r.styles.Mark)
		var plain string
		plain, rest, _ = strings.Cut(after, "<mark>")
		emit(plain, r.styles.Muted)
	}
	return b.String()
}

// Title returns a result's title in l, falling back along l's chain and
// finally to the slug.
func Title(res *domain.SearchResult, l domain.Locale) string {
	if res.Article != nil {
		if title, _, ok := domain.FirstNonEmpty(res.Article.Title, l.FallbackChain()); ok {
			return title
		}
	}
	return string(res.ArticleID)
}

// firstHighlight prefers matched-field order, then field name order.
func firstHighlight(res *domain.SearchResult) string {
	for _, field := range res.MatchedFields {
		if h, ok := res.Highlights[field]; ok {
			return h
		}
	}
	fields := slices.Sorted(maps.Keys(res.Highlights))
	if len(fields) == 0 {
		return ""
	}
	return res.Highlights[fields[0]]
}

// truncate shortens s to at most n terminal cells. Wide CJK runes count
// as two.
func truncate(s string, n int) string {
	if ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "…")
}

// SetResults replaces the results and selects the first.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

func (r *ResultList) Results() []domain.SearchResult { return r.results }
func (r *ResultList) SetLocale(l domain.Locale)      { r.locale = l }
func (r *ResultList) Selected() int                  { return r.selected }
func (r *ResultList) Count() int                     { return len(r.results) }

// SetSelected moves the selection. Out of range indexes are ignored.
func (r *ResultList) SetSelected(i int) {
	if i >= 0 && i < len(r.results) {
		r.selected = i
	}
}

// SelectedResult returns the selected result, or nil when empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

func (r *ResultList) MoveUp()   { r.selected = max(r.selected-1, 0) }
func (r *ResultList) MoveDown() { r.selected = max(min(r.selected+1, len(r.results)-1), 0) }

func (r *ResultList) SetDimensions(width, height int) {
	r.width, r.height = width, height
}
