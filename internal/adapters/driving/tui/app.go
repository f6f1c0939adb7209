package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/views/article"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/views/compare"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/parallax/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

// summaryLoaded carries corpus statistics for the menu.
type summaryLoaded struct {
	stats domain.CorpusStats
	err   error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	searchView  *search.View
	articleView *article.View
	compareView *compare.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		searchView:  search.NewView(s, km, ports.Search, ports.Locale),
		articleView: article.NewView(s, km, ports.Catalogue, ports.Articles),
		compareView: compare.NewView(s, km, ports.Compare),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.articleView.WithContext(ctx)
	a.compareView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("parallax"),
		a.loadSummary(),
	)
}

func (a *App) loadSummary() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.ports.Catalogue.CorpusStats(a.ctx)
		return summaryLoaded{stats: stats, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case summaryLoaded:
		if msg.err == nil {
			a.menuView.SetSummary(fmt.Sprintf("%d articles, %d tags", msg.stats.TotalArticles, msg.stats.TotalTags))
		}
		return a, nil

	case messages.ViewChanged:
		previous := a.currentView
		a.currentView = msg.View
		if msg.View == messages.ViewSearch && previous == messages.ViewMenu {
			a.searchView.Reset()
			return a, a.searchView.Init()
		}
		return a, nil

	case messages.BrowseRequested:
		a.currentView = messages.ViewSearch
		a.searchView.Reset()
		return a, a.searchView.Browse()

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ArticleSelected:
		a.currentView = messages.ViewArticle
		return a, a.articleView.Open(msg.ID, msg.Locale)

	case messages.ArticleLoaded:
		a.articleView, cmd = a.articleView.Update(msg)
		a.err = a.articleView.Err()
		return a, cmd

	case messages.CompareRequested:
		if a.ports.Compare == nil {
			a.articleView, cmd = a.articleView.Update(messages.ErrorOccurred{Err: compare.ErrNoCompareService})
			return a, cmd
		}
		a.currentView = messages.ViewCompare
		return a, a.compareView.Open(msg.ID, msg.Left, msg.Right)

	case messages.ComparisonLoaded:
		a.compareView, cmd = a.compareView.Update(msg)
		a.err = a.compareView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// handleKey routes a key press to the active view.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.currentView == messages.ViewHelp {
		if keymap.Matches(msg.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
		return nil
	}
	return a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewArticle:
		a.articleView, cmd = a.articleView.Update(msg)
	case messages.ViewCompare:
		a.compareView, cmd = a.compareView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewArticle:
		return a.articleView.View()
	case messages.ViewCompare:
		return a.compareView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp lists every binding grouped as the keymap groups them.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	full := help.New()
	full.ShowAll = true
	b.WriteString(full.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Search matches titles, tags and text in every locale; typos are tolerated."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.WithContext(ctx)
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.articleView.SetDimensions(width, height)
	a.compareView.SetDimensions(width, height)
}
