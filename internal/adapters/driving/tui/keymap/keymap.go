// Package keymap holds the reader's key bindings.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
)

// KeyMap is every binding the reader responds to. It satisfies help.KeyMap.
type KeyMap struct {
	Quit, Help, Back key.Binding

	// Search submits the query; Open reads the selected result. Both are enter.
	Search, Open key.Binding
	NewSearch    key.Binding
	Sort         key.Binding

	Up, Down         key.Binding
	PageUp, PageDown key.Binding
	Top, Bottom      key.Binding

	// Locale cycles the reading locale. Compare opens the side-by-side
	// view, where Swap exchanges the two sides.
	Locale, Compare, Swap key.Binding
}

func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("q", "quit", "q", "ctrl+c"),
		Help: bind("?", "help", "?"),
		Back: bind("esc", "back", "esc"),

		Search:    bind("enter", "search", "enter"),
		Open:      bind("enter", "read", "enter"),
		NewSearch: bind("/", "new search", "n", "/"),
		Sort:      bind("s", "sort", "s"),

		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		PageUp:   bind("pgup", "page up", "pgup", "ctrl+u"),
		PageDown: bind("pgdn", "page down", "pgdown", "ctrl+d"),
		Top:      bind("g", "top", "home", "g"),
		Bottom:   bind("G", "bottom", "end", "G"),

		Locale:  bind("l", "locale", "l"),
		Compare: bind("c", "compare", "c"),
		Swap:    bind("x", "swap", "x"),
	}
}

// ShortHelp is shown while a query is being typed.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Back}
}

// FullHelp groups every binding for the help screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Search, k.Open, k.NewSearch, k.Sort},
		{k.Locale, k.Compare, k.Swap},
		{k.Back, k.Help, k.Quit},
	}
}

// Hints returns the bindings worth showing on a screen.
func (k *KeyMap) Hints(view messages.ViewType) []key.Binding {
	switch view {
	case messages.ViewSearch:
		return []key.Binding{k.Open, k.NewSearch, k.Sort, k.Locale, k.Back}
	case messages.ViewArticle:
		return []key.Binding{k.Up, k.PageDown, k.Locale, k.Compare, k.Back}
	case messages.ViewCompare:
		return []key.Binding{k.Up, k.PageDown, k.Locale, k.Swap, k.Back}
	default:
		return []key.Binding{k.Help, k.Quit}
	}
}

// Matches reports whether the key string s triggers b.
func Matches(s string, b key.Binding) bool {
	return b.Enabled() && slices.Contains(b.Keys(), s)
}
