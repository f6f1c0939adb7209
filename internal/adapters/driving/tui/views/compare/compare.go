// Package compare provides the side-by-side translation view for the TUI.
package compare

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
	"github.com/custodia-labs/parallax/internal/render"
)

// ErrNoCompareService indicates that no compare service was provided.
var ErrNoCompareService = errors.New("compare service is required")

const (
	gutterWidth = 6
	headerLines = 6
)

// View shows two locales of an article aligned row by row.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.CompareService
	ctx     context.Context

	id          domain.ArticleID
	left, right domain.Locale
	comparison  *domain.Comparison

	lines        []string
	scrollOffset int
	width        int
	height       int
	loading      bool
	err          error
}

// NewView creates a compare view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.CompareService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		ctx:     context.Background(),
		width:   100,
		height:  24,
	}
}

// WithContext sets the context for comparisons.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open starts aligning left against right.
func (v *View) Open(id domain.ArticleID, left, right domain.Locale) tea.Cmd {
	v.id, v.left, v.right = id, left, right
	v.comparison = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true

	return func() tea.Msg {
		if v.service == nil {
			return messages.ComparisonLoaded{Err: ErrNoCompareService}
		}
		cmp, err := v.service.Compare(v.ctx, id, left, right)
		return messages.ComparisonLoaded{Comparison: cmp, Err: err}
	}
}

// Update handles messages for the compare view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ComparisonLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Comparison == nil || msg.Comparison.ArticleID != v.id ||
			msg.Comparison.Left != v.left || msg.Comparison.Right != v.right {
			v.loading = true
			return v, nil
		}
		v.comparison = msg.Comparison
		v.layout()
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewArticle}
		}
	case keymap.Matches(key, v.keymap.Up):
		v.scroll(-1)
	case keymap.Matches(key, v.keymap.Down):
		v.scroll(1)
	case keymap.Matches(key, v.keymap.PageUp):
		v.scroll(-v.visibleLines())
	case keymap.Matches(key, v.keymap.PageDown):
		v.scroll(v.visibleLines())
	case keymap.Matches(key, v.keymap.Top):
		v.scrollOffset = 0
	case keymap.Matches(key, v.keymap.Bottom):
		v.scrollOffset = v.maxScrollOffset()
	case keymap.Matches(key, v.keymap.Swap):
		return v, v.Open(v.id, v.right, v.left)
	case keymap.Matches(key, v.keymap.Locale):
		next := domain.Locale((int(v.right) + 1) % domain.NumLocales)
		if next == v.left {
			next = domain.Locale((int(next) + 1) % domain.NumLocales)
		}
		return v, v.Open(v.id, v.left, next)
	}
	return v, nil
}

func (v *View) scroll(delta int) {
	v.scrollOffset = max(0, min(v.scrollOffset+delta, v.maxScrollOffset()))
}

// layout renders every row into wrapped two-column lines.
func (v *View) layout() {
	if v.comparison == nil {
		v.lines = nil
		return
	}

	col := max((v.width-gutterWidth-2)/2, 10)
	gutter := lipgloss.NewStyle().Width(gutterWidth)
	cell := lipgloss.NewStyle().Width(col).PaddingRight(1)

	var rows []string
	for _, row := range v.comparison.Rows {
		right := cellText(row.RightText)
		if row.RightMissing {
			right = v.styles.Muted.Render("(missing)")
		}
		left := cellText(row.LeftText)
		if row.LeftTag.IsHeading() {
			left = v.styles.Subtitle.Render(left)
			if !row.RightMissing {
				right = v.styles.Subtitle.Render(right)
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			gutter.Render(v.styles.Marker.Render(row.MarkerID)),
			cell.Render(left),
			cell.Render(right),
		))
	}
	if len(v.comparison.RightOnly) > 0 {
		rows = append(rows, "", v.styles.Warning.Render(fmt.Sprintf("Only in %s: %s",
			v.comparison.Right, strings.Join(v.comparison.RightOnly, ", "))))
	}

	v.lines = strings.Split(strings.Join(rows, "\n"), "\n")
}

// cellText reduces a rendered cell to terminal text.
func cellText(cell string) string {
	return html.UnescapeString(render.StripMarkup(cell))
}

func (v *View) visibleLines() int {
	return max(v.height-headerLines, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the comparison.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Aligning %s: %s ↔ %s...", v.id, v.left, v.right)))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.comparison != nil:
		b.WriteString(v.renderHeader())
		end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
		for _, line := range v.lines[v.scrollOffset:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(v.comparison.Rows) == 0 {
			b.WriteString(v.styles.Muted.Render("(No aligned sentences)"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(help.New().ShortHelpView(v.keymap.Hints(messages.ViewCompare)))
	return b.String()
}

func (v *View) renderHeader() string {
	col := max((v.width-gutterWidth-2)/2, 10)
	cell := lipgloss.NewStyle().Width(col).PaddingRight(1)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(gutterWidth).Render(""),
		cell.Render(v.styles.Title.Render(fmt.Sprintf("[%s] %s", v.comparison.Left, v.comparison.Title[0]))),
		cell.Render(v.styles.Title.Render(fmt.Sprintf("[%s] %s", v.comparison.Right, v.comparison.Title[1]))),
	)
	return header + "\n" + strings.Repeat("─", max(v.width-2, 1)) + "\n"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
}

// Comparison returns the loaded comparison.
func (v *View) Comparison() *domain.Comparison {
	return v.comparison
}

// Locales returns the compared locales.
func (v *View) Locales() (left, right domain.Locale) {
	return v.left, v.right
}

// Loading reports whether an alignment is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
