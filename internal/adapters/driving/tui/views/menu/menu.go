// Package menu is the start screen: corpus summary and the entry points.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
)

// Item is one entry. Choosing it sends Msg; a nil Msg quits.
type Item struct {
	Label       string
	Description string
	Msg         tea.Msg
}

// View lists the items. Up and down wrap around; digits pick directly.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	summary  string
	width    int
	height   int
	ready    bool
}

// NewView creates the menu. Nil styles or keymap use the defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		items: []Item{
			{"Search", "fuzzy search across every locale", messages.ViewChanged{View: messages.ViewSearch}},
			{"Browse", "every article, newest first", messages.BrowseRequested{}},
			{"Help", "keybindings", messages.ViewChanged{View: messages.ViewHelp}},
			{"Quit", "", nil},
		},
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		n := len(v.items)
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.selected = (v.selected + n - 1) % n
		case key.Matches(msg, v.keymap.Down):
			v.selected = (v.selected + 1) % n
		case key.Matches(msg, v.keymap.Open):
			return v, v.choose(v.selected)
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		default:
			if d := msg.String(); len(d) == 1 && d[0] >= '1' && int(d[0]-'0') <= n {
				v.selected = int(d[0] - '1')
				return v, v.choose(v.selected)
			}
		}
	}
	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Msg == nil {
		return tea.Quit
	}
	return func() tea.Msg { return item.Msg }
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := []string{
		v.styles.Title.Render("Parallax"),
		v.styles.Muted.Render("ja · en · zh-TW · zh-CN"),
	}
	if v.summary != "" {
		lines = append(lines, v.styles.Muted.Render(v.summary))
	}
	lines = append(lines, "")

	for i, item := range v.items {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		row := "  " + v.styles.Normal.Render(label)
		if i == v.selected {
			row = v.styles.Marker.Render("▸ ") + v.styles.Subtitle.Render(label)
		}
		if item.Description != "" {
			row += "  " + v.styles.Muted.Render(item.Description)
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", v.styles.Help.Render("↑/↓ move · enter or 1-4 choose · q quit"))

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

// SetSummary sets the corpus line under the title.
func (v *View) SetSummary(summary string) {
	v.summary = summary
}

func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the entries.
func (v *View) Items() []Item {
	return v.items
}
