// Package styles holds the reader's palette and lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// Palette is the set of colours the reader draws with. Each colour adapts
// to light and dark terminal backgrounds.
type Palette struct {
	Accent lipgloss.AdaptiveColor
	Info   lipgloss.AdaptiveColor
	Text   lipgloss.AdaptiveColor
	Dim    lipgloss.AdaptiveColor
	Warn   lipgloss.AdaptiveColor
	Fail   lipgloss.AdaptiveColor
	Frame  lipgloss.AdaptiveColor
	Match  lipgloss.AdaptiveColor
	Bar    lipgloss.AdaptiveColor

	// Locales tints the badge of each locale.
	Locales domain.Localized[lipgloss.AdaptiveColor]
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() *Palette {
	p := &Palette{
		Accent: adaptive("#6D28D9", "#A78BFA"),
		Info:   adaptive("#0E7490", "#67E8F9"),
		Text:   adaptive("#1E1E2E", "#CDD6F4"),
		Dim:    adaptive("#8C8FA1", "#6C7086"),
		Warn:   adaptive("#B45309", "#F9E2AF"),
		Fail:   adaptive("#B91C1C", "#F38BA8"),
		Frame:  adaptive("#BCC0CC", "#45475A"),
		Match:  adaptive("#BE185D", "#F5C2E7"),
		Bar:    adaptive("#E6E9EF", "#181825"),
	}
	p.Locales.Set(domain.LocaleJA, adaptive("#C2410C", "#FAB387"))
	p.Locales.Set(domain.LocaleEN, adaptive("#1D4ED8", "#89B4FA"))
	p.Locales.Set(domain.LocaleZhTW, adaptive("#047857", "#A6E3A1"))
	p.Locales.Set(domain.LocaleZhCN, adaptive("#A21CAF", "#CBA6F7"))
	return p
}

// Styles are the lipgloss styles every view shares.
type Styles struct {
	palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	// Mark renders a query match; Marker an alignment id in the compare gutter.
	Mark   lipgloss.Style
	Marker lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	badges [2]domain.Localized[lipgloss.Style]
}

// NewStyles derives styles from p, or from DefaultPalette when p is nil.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	rounded := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Frame)

	s := &Styles{
		palette:    p,
		Title:      fg(p.Accent).Bold(true),
		Subtitle:   fg(p.Info).Bold(true),
		Normal:     fg(p.Text),
		Muted:      fg(p.Dim),
		Selected:   fg(p.Text).Background(p.Accent).Bold(true),
		Error:      fg(p.Fail),
		Warning:    fg(p.Warn),
		Mark:       fg(p.Match).Bold(true),
		Marker:     fg(p.Dim),
		InputField: rounded.Padding(0, 1),
		StatusBar:  fg(p.Dim).Background(p.Bar).Padding(0, 1),
		Help:       fg(p.Dim),
		Border:     rounded,
	}
	for _, l := range domain.AllLocales() {
		tint := p.Locales.Get(l)
		s.badges[0].Set(l, fg(tint).Padding(0, 1))
		s.badges[1].Set(l, lipgloss.NewStyle().
			Foreground(p.Bar).
			Background(tint).
			Bold(true).
			Padding(0, 1))
	}
	return s
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(nil)
}

// Palette returns the colours the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Badge renders a locale code in its tint. An active badge is filled.
func (s *Styles) Badge(l domain.Locale, active bool) string {
	i := 0
	if active {
		i = 1
	}
	return s.badges[i].Get(l).Render(l.String())
}
