package driving

import (
	"context"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search queries the current index snapshot, then filters, sorts and
	// paginates according to opts.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Stats summarises the unpaginated results of a query.
	Stats(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchStats, error)

	// Tags returns every tag in the current snapshot.
	Tags(ctx context.Context) ([]string, error)

	// Rebuild loads the corpus and atomically replaces the index. Queries
	// running meanwhile keep using the previous snapshot.
	Rebuild(ctx context.Context) error
}

// CatalogueService answers listing questions about the loaded corpus.
type CatalogueService interface {
	// Get returns an article from the current snapshot.
	Get(ctx context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error)

	// List returns every article, newest first.
	List(ctx context.Context) ([]*domain.MultiLocaleArticle, error)

	// Latest returns the newest articles.
	Latest(ctx context.Context, limit int) ([]*domain.MultiLocaleArticle, error)

	// Popular returns featured articles first, then the newest.
	Popular(ctx context.Context, limit int) ([]*domain.MultiLocaleArticle, error)

	// Related returns articles sharing the most tags with id.
	Related(ctx context.Context, id domain.ArticleID, limit int) ([]*domain.MultiLocaleArticle, error)

	// ByTag returns articles carrying tag in any locale, newest first.
	ByTag(ctx context.Context, tag string) ([]*domain.MultiLocaleArticle, error)

	// CorpusStats summarises the current snapshot.
	CorpusStats(ctx context.Context) (domain.CorpusStats, error)

	// Failures lists the articles the current snapshot could not load.
	Failures() []domain.LoadFailure
}
