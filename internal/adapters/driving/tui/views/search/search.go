// Package search is the query screen: an input line, the ranked results
// and a status footer. It runs in one of two modes; typing edits the query
// and browsing moves through results.
package search

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
)

// ErrNoSearchService is reported when a query is submitted without an index.
var ErrNoSearchService = errors.New("no article index to query")

// chromeHeight is the title, input, spacing and footer around the list.
const chromeHeight = 10

// s cycles through these in order.
var sortCycle = []domain.SortMode{domain.SortRelevance, domain.SortDate, domain.SortTitle}

type mode uint8

const (
	typing mode = iota
	browsing
)

// View is the search screen.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.SearchInput
	list   *list.ResultList
	footer *status.Bar

	service driving.SearchService
	ctx     context.Context

	mode      mode
	locale    domain.Locale
	sort      domain.SortMode
	lastQuery string
	err       error

	width, height int
	ready         bool
}

// NewView creates the view in typing mode, reading in locale.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	service driving.SearchService,
	locale domain.Locale,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:  s,
		keymap:  km,
		input:   input.NewSearchInput(s),
		list:    list.NewResultList(s),
		footer:  status.NewBar(s, km),
		service: service,
		ctx:     context.Background(),
		sort:    domain.SortRelevance,
		width:   80,
		height:  24,
	}
	v.SetLocale(locale)
	return v
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		if v.mode == typing {
			return v.updateTyping(msg)
		}
		return v, v.updateBrowsing(msg)
	case messages.SearchCompleted:
		v.showResults(msg)
		return v, nil
	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Cursor blink and other input housekeeping.
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) updateTyping(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return v, backToMenu
	case tea.KeyEnter:
		// An empty query browses the whole corpus.
		return v, v.submit(v.input.Value())
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	km := v.keymap
	switch {
	case msg.Type == tea.KeyEsc:
		return backToMenu
	case key.Matches(msg, km.Open):
		if r := v.list.SelectedResult(); r != nil {
			selected := messages.ArticleSelected{ID: r.ArticleID, Locale: v.locale}
			return func() tea.Msg { return selected }
		}
	case key.Matches(msg, km.Up):
		v.list.MoveUp()
	case key.Matches(msg, km.Down):
		v.list.MoveDown()
	case key.Matches(msg, km.NewSearch):
		v.mode = typing
		v.input.Reset()
		return v.input.Focus()
	case key.Matches(msg, km.Sort):
		v.sort = nextSort(v.sort)
		return v.submit(v.lastQuery)
	case key.Matches(msg, km.Locale):
		v.SetLocale((v.locale + 1) % domain.NumLocales)
		return v.submit(v.lastQuery)
	}
	return nil
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func nextSort(m domain.SortMode) domain.SortMode {
	for i, s := range sortCycle {
		if s == m {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return domain.SortRelevance
}

// submit switches to browsing and queries the index in the background.
func (v *View) submit(query string) tea.Cmd {
	v.lastQuery = query
	v.input.Remember(query)
	v.input.Blur()
	v.mode = browsing
	v.footer.SetState(status.StateSearching)

	svc, ctx := v.service, v.ctx
	opts := domain.SearchOptions{Locale: v.locale, Sort: v.sort}
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// Browse lists every article, newest first.
func (v *View) Browse() tea.Cmd {
	v.input.SetValue("")
	v.sort = domain.SortDate
	return v.submit("")
}

func (v *View) showResults(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.mode = browsing
	v.input.Blur()
	v.list.SetResults(msg.Results)
	v.footer.SetState(status.StateResults)
	v.footer.SetResultCount(len(msg.Results))
	v.footer.SetSort(v.sort)
	v.footer.SetMessage("")
}

func (v *View) setError(err error) {
	v.err = err
	v.footer.SetState(status.StateError)
	v.footer.SetMessage(err.Error())
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	parts := []string{v.styles.Title.Render("Parallax"), "", v.input.View(), ""}
	if v.err != nil {
		parts = append(parts, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	parts = append(parts, v.list.View(), "", v.footer.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.ready = true
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-chromeHeight)
	v.footer.SetWidth(width)
}

// SetLocale changes the locale of titles, previews and later queries.
func (v *View) SetLocale(l domain.Locale) {
	v.locale = l
	v.input.SetLocale(l)
	v.list.SetLocale(l)
	v.footer.SetLocale(l)
}

func (v *View) Locale() domain.Locale          { return v.locale }
func (v *View) Sort() domain.SortMode          { return v.sort }
func (v *View) Ready() bool                    { return v.ready }
func (v *View) Query() string                  { return v.input.Value() }
func (v *View) SetQuery(query string)          { v.input.SetValue(query) }
func (v *View) Results() []domain.SearchResult { return v.list.Results() }
func (v *View) SelectedIndex() int             { return v.list.Selected() }
func (v *View) Err() error                     { return v.err }

// InputFocused reports whether keys edit the query.
func (v *View) InputFocused() bool { return v.mode == typing }

// Reset returns to an empty query in typing mode.
func (v *View) Reset() {
	v.mode = typing
	v.input.Reset()
	v.input.Focus()
	v.list.SetResults(nil)
	v.lastQuery = ""
	v.err = nil
	v.footer.Clear()
}
