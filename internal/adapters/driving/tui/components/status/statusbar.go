// Package status is the one-line footer of the search view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

// State selects the left-hand text and the key hints.
type State uint8

const (
	StateReady State = iota
	StateSearching
	StateResults
	StateError
)

// Bar shows the locale, query progress or result count, and key hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	state   State
	message string
	count   int
	sort    domain.SortMode
	locale  domain.Locale
	width   int
}

// NewBar creates a bar in StateReady. Nil styles or keymap use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = s.Subtitle
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted

	return &Bar{
		styles: s,
		keymap: km,
		help:   h,
		sort:   domain.SortRelevance,
		locale: domain.DefaultLocale,
		width:  80,
	}
}

// View lays the status on the left and hints on the right. Hints are
// truncated first when the terminal is narrow.
func (s *Bar) View() string {
	left := s.status()
	s.help.Width = max(s.width-lipgloss.Width(left)-1, 0)
	right := s.help.ShortHelpView(s.hints())

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	badge := s.styles.Badge(s.locale, false)

	var text string
	switch s.state {
	case StateSearching:
		text = s.styles.Muted.Render("Searching...")
	case StateResults:
		text = s.styles.Normal.Render(fmt.Sprintf("%d results · by %s", s.count, s.sort))
		if s.message != "" {
			text += s.styles.Muted.Render(" · " + s.message)
		}
	case StateError:
		text = s.styles.Error.Render(strings.TrimSuffix("Error: "+s.message, ": "))
	default:
		text = s.styles.Muted.Render("Ready")
		if s.message != "" {
			text = s.styles.Normal.Render(s.message)
		}
	}
	return badge + " " + text
}

func (s *Bar) hints() []key.Binding {
	if s.state == StateResults && s.count > 0 {
		return s.keymap.Hints(messages.ViewSearch)
	}
	return s.keymap.ShortHelp()
}

func (s *Bar) SetState(state State) {
	s.state = state
}

func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a note shown after the status text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

func (s *Bar) Message() string {
	return s.message
}

func (s *Bar) SetResultCount(count int) {
	s.count = count
}

// SetSort records the ordering shown next to the result count.
func (s *Bar) SetSort(m domain.SortMode) {
	s.sort = m
}

func (s *Bar) SetLocale(l domain.Locale) {
	s.locale = l
}

func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear returns to StateReady without a message or count.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
}
