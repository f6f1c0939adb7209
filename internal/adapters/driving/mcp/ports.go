package mcp

import (
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
)

// Ports are the services the server calls. Search and Catalogue are
// required. Without Compare the compare tool is not registered; without
// Articles, get_article only sees indexed articles.
type Ports struct {
	Search    driving.SearchService
	Catalogue driving.CatalogueService
	Compare   driving.CompareService
	Articles  driving.ArticleService
}

// Validate reports the first missing required port.
func (p *Ports) Validate() error {
	switch {
	case p.Search == nil:
		return ErrMissingSearchService
	case p.Catalogue == nil:
		return ErrMissingCatalogueService
	}
	return nil
}
