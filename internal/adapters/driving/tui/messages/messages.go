// Package messages holds the tea.Msg values passed between the reader's
// views and the root model.
package messages

import (
	"github.com/custodia-labs/parallax/internal/core/domain"
)

// ViewType names a screen of the reader.
type ViewType int

const (
	ViewMenu ViewType = iota
	ViewSearch
	ViewHelp
	ViewArticle
	ViewCompare
)

var viewNames = [...]string{"menu", "search", "help", "article", "compare"}

func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// Navigation.
type (
	// ViewChanged switches the active screen.
	ViewChanged struct{ View ViewType }

	// BrowseRequested opens the search screen listing every article.
	BrowseRequested struct{}

	// ArticleSelected opens an article in the given locale.
	ArticleSelected struct {
		ID     domain.ArticleID
		Locale domain.Locale
	}

	// CompareRequested opens two locales of an article side by side.
	CompareRequested struct {
		ID          domain.ArticleID
		Left, Right domain.Locale
	}

	Quit struct{}
)

// Results of commands run off the update loop.
type (
	SearchCompleted struct {
		Query   string
		Results []domain.SearchResult
		Err     error
	}

	ArticleLoaded struct {
		ID      domain.ArticleID
		Article *domain.MultiLocaleArticle
		Err     error
	}

	ComparisonLoaded struct {
		Comparison *domain.Comparison
		Err        error
	}

	// ErrorOccurred surfaces a failure in the status bar.
	ErrorOccurred struct{ Err error }
)
