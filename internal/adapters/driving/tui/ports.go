// Package tui provides an interactive terminal reader for parallax.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"errors"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
)

// Errors returned by Ports.Validate.
var (
	ErrMissingSearchService    = errors.New("tui: no search service to query")
	ErrMissingCatalogueService = errors.New("tui: no catalogue to open articles from")
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Search queries the index.
	Search driving.SearchService

	// Catalogue resolves articles from the current snapshot.
	Catalogue driving.CatalogueService

	// Articles loads articles the snapshot does not hold. Optional.
	Articles driving.ArticleService

	// Compare aligns two locales. Optional; without it the compare view
	// is unavailable.
	Compare driving.CompareService

	// Locale is the reading locale the TUI starts in.
	Locale domain.Locale
}

// Validate reports the first required port that is nil.
func (p *Ports) Validate() error {
	switch {
	case p.Search == nil:
		return ErrMissingSearchService
	case p.Catalogue == nil:
		return ErrMissingCatalogueService
	}
	return nil
}
