// Package article provides the article reader view for the TUI.
package article

import (
	"context"
	"errors"
	"fmt"
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

// ErrNoCatalogue indicates that no catalogue service was provided.
var ErrNoCatalogue = errors.New("catalogue service is required")

// headerLines is the height of the title block and help footer.
const headerLines = 8

// View reads one locale of an article.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	catalogue driving.CatalogueService
	articles  driving.ArticleService
	ctx       context.Context

	id      domain.ArticleID
	article *domain.MultiLocaleArticle
	locale  domain.Locale

	// shown is the locale whose text is displayed; it differs from locale
	// when locale has no source and a fallback is used.
	shown domain.Locale

	lines        []string
	scrollOffset int
	width        int
	height       int
	loading      bool
	err          error
}

// NewView creates a reader. articles is optional and is used for articles
// the catalogue snapshot does not hold.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalogue driving.CatalogueService, articles driving.ArticleService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		catalogue: catalogue,
		articles:  articles,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for loads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open starts loading an article in the given locale.
func (v *View) Open(id domain.ArticleID, locale domain.Locale) tea.Cmd {
	v.id = id
	v.locale = locale
	v.article = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.load(id)
}

func (v *View) load(id domain.ArticleID) tea.Cmd {
	return func() tea.Msg {
		if v.catalogue == nil {
			return messages.ArticleLoaded{ID: id, Err: ErrNoCatalogue}
		}
		a, err := v.catalogue.Get(v.ctx, id)
		if err != nil && v.articles != nil &&
			(errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrIndexNotBuilt)) {
			a, err = v.articles.Load(v.ctx, id, nil)
		}
		return messages.ArticleLoaded{ID: id, Article: a, Err: err}
	}
}

// Update handles messages for the reader.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ArticleLoaded:
		if msg.ID != v.id {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.article = msg.Article
		v.layout()
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
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
	case keymap.Matches(key, v.keymap.Locale):
		v.cycleLocale()
	case keymap.Matches(key, v.keymap.Compare):
		return v, v.compare()
	}
	return v, nil
}

func (v *View) scroll(delta int) {
	v.scrollOffset = max(0, min(v.scrollOffset+delta, v.maxScrollOffset()))
}

// cycleLocale moves to the next locale that has a source.
func (v *View) cycleLocale() {
	if v.article == nil {
		return
	}
	avail := v.article.AvailableLocales()
	if len(avail) == 0 {
		return
	}
	next := avail[0]
	for i, l := range avail {
		if l == v.shown {
			next = avail[(i+1)%len(avail)]
			break
		}
	}
	v.locale = next
	v.scrollOffset = 0
	v.layout()
}

// compare requests the shown locale against its secondary, or the next
// available locale when the secondary has no source.
func (v *View) compare() tea.Cmd {
	if v.article == nil {
		return nil
	}
	right, ok := v.compareTarget()
	if !ok {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: fmt.Errorf("%w: %s has a single locale", domain.ErrNotFound, v.id)}
		}
	}
	req := messages.CompareRequested{ID: v.article.ID, Left: v.shown, Right: right}
	return func() tea.Msg { return req }
}

func (v *View) compareTarget() (domain.Locale, bool) {
	if secondary := v.shown.Secondary(); v.article.Available.Get(secondary) {
		return secondary, true
	}
	for _, l := range v.article.AvailableLocales() {
		if l != v.shown {
			return l, true
		}
	}
	return 0, false
}

// layout picks the locale to show and wraps its text to the view width.
func (v *View) layout() {
	if v.article == nil {
		v.lines = nil
		return
	}

	v.shown = v.locale
	source := v.article.Sources.Get(v.locale)
	if source == "" {
		if text, l, ok := domain.FirstNonEmpty(v.article.Sources, v.locale.FallbackChain()); ok {
			source, v.shown = text, l
		}
	}

	body := render.StripMarkup(source)
	if body == "" {
		v.lines = nil
		return
	}
	width := max(v.width-4, 20)
	wrapped := lipgloss.NewStyle().Width(width).Render(body)
	v.lines = strings.Split(wrapped, "\n")
}

func (v *View) visibleLines() int {
	return max(v.height-headerLines, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the reader.
func (v *View) View() string {
	var b strings.Builder

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading " + string(v.id) + "..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}
	if v.article == nil {
		return v.renderHelp()
	}

	b.WriteString(v.renderHeader())
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n")
	}
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+v.visibleLines(); i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}
	if len(v.lines) > v.visibleLines() {
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("\n  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+v.visibleLines(), len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHeader() string {
	a := v.article
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(a.Title.Get(v.locale)))
	b.WriteString("\n")

	var badges []string
	for _, l := range domain.AllLocales() {
		switch {
		case l == v.shown:
			badges = append(badges, v.styles.Badge(l, true))
		case a.Available.Get(l):
			badges = append(badges, v.styles.Badge(l, false))
		}
	}
	b.WriteString(strings.Join(badges, " "))
	if v.shown != v.locale {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("  no %s translation, showing %s", v.locale, v.shown)))
	}
	b.WriteString("\n")

	meta := []string{}
	if author, _, ok := domain.FirstNonEmpty(a.Author.Name, v.locale.FallbackChain()); ok {
		meta = append(meta, author)
	}
	if !a.PublishDate.IsZero() {
		meta = append(meta, a.PublishDate.Format("2006-01-02"))
	}
	if minutes := a.ReadingTimeMinutes.Get(v.shown); minutes > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", minutes))
	}
	if tags := a.Tags.Get(v.shown); len(tags) > 0 {
		meta = append(meta, "#"+strings.Join(tags, " #"))
	}
	b.WriteString(v.styles.Muted.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	for _, w := range a.Warnings {
		if w.Locale == v.shown {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("! %s: %s", w.Kind, w.Detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *View) renderHelp() string {
	return help.New().ShortHelpView(v.keymap.Hints(messages.ViewArticle))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
}

// Article returns the loaded article.
func (v *View) Article() *domain.MultiLocaleArticle {
	return v.article
}

// Locale returns the requested locale.
func (v *View) Locale() domain.Locale {
	return v.locale
}

// ShownLocale returns the locale whose text is displayed.
func (v *View) ShownLocale() domain.Locale {
	return v.shown
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
