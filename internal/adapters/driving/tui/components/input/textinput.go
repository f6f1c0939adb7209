// Package input is the query field of the search view.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

const (
	// minInputWidth keeps the field usable in narrow terminals.
	minInputWidth = 20

	// chromeWidth is the label, badge and border around the field.
	chromeWidth = 20

	maxHistory = 50
)

// placeholders is the hint text in each reading locale.
var placeholders = domain.Localized[string]{
	domain.LocaleJA:   "タイトル・タグ・本文を検索…",
	domain.LocaleEN:   "Search titles, tags and text in any language…",
	domain.LocaleZhTW: "搜尋標題、標籤與內文…",
	domain.LocaleZhCN: "搜索标题、标签和正文…",
}

// SearchInput is a text field badged with the reading locale. Up and down
// recall earlier queries.
type SearchInput struct {
	field   textinput.Model
	styles  *styles.Styles
	locale  domain.Locale
	width   int
	history []string
	recall  int // index into history while browsing it, len(history) otherwise
}

// NewSearchInput creates a focused input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.CharLimit = 256
	field.Width = 50
	field.Focus()

	in := &SearchInput{field: field, styles: s, width: 50}
	in.SetLocale(domain.DefaultLocale)
	return in
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && s.field.Focused() {
		switch k.Type {
		case tea.KeyUp:
			s.step(-1)
			return s, nil
		case tea.KeyDown:
			s.step(1)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	return s, cmd
}

// step moves through history; stepping past the newest entry clears the field.
func (s *SearchInput) step(delta int) {
	next := s.recall + delta
	if next < 0 || next > len(s.history) {
		return
	}
	s.recall = next
	if next == len(s.history) {
		s.field.SetValue("")
		return
	}
	s.field.SetValue(s.history[next])
	s.field.CursorEnd()
}

// Remember records a submitted query. Blank queries and immediate repeats
// are skipped.
func (s *SearchInput) Remember(query string) {
	if query != "" && (len(s.history) == 0 || s.history[len(s.history)-1] != query) {
		s.history = append(s.history, query)
		if len(s.history) > maxHistory {
			s.history = s.history[len(s.history)-maxHistory:]
		}
	}
	s.recall = len(s.history)
}

// History returns remembered queries, oldest first.
func (s *SearchInput) History() []string {
	return s.history
}

func (s *SearchInput) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.styles.Title.Render("Search"), " ",
		s.styles.Badge(s.locale, true), " ",
		s.styles.InputField.Render(s.field.View()),
	)
}

func (s *SearchInput) Value() string {
	return s.field.Value()
}

func (s *SearchInput) SetValue(value string) {
	s.field.SetValue(value)
}

// SetLocale changes the badge and the placeholder language.
func (s *SearchInput) SetLocale(l domain.Locale) {
	s.locale = l
	s.field.Placeholder = placeholders.Get(l)
}

func (s *SearchInput) Locale() domain.Locale {
	return s.locale
}

func (s *SearchInput) Focus() tea.Cmd {
	return s.field.Focus()
}

func (s *SearchInput) Blur() {
	s.field.Blur()
}

func (s *SearchInput) Focused() bool {
	return s.field.Focused()
}

// SetWidth sizes the whole component; the field gets what the chrome
// leaves, but never less than minInputWidth.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.field.Width = max(width-chromeWidth, minInputWidth)
}

func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the field and leaves history browsing.
func (s *SearchInput) Reset() {
	s.field.Reset()
	s.recall = len(s.history)
}
