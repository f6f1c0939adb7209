package driven

import (
	"context"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// RenderKey identifies one rendered locale. ContentHash covers the locale
// source and the article's caption table, so any edit yields a new key.
type RenderKey struct {
	ArticleID   domain.ArticleID
	Locale      domain.Locale
	ContentHash string
}

// RenderCache stores rendered locales between loads.
// Implementations must be safe for concurrent use.
type RenderCache interface {
	// Get returns the cached render for key, if present.
	Get(ctx context.Context, key RenderKey) (*domain.RenderedLocale, bool, error)

	// Put stores a render.
	Put(ctx context.Context, key RenderKey, rendered *domain.RenderedLocale) error

	// Purge removes every entry. Called whenever sources change.
	Purge(ctx context.Context) error

	// Len returns the number of cached entries.
	Len(ctx context.Context) (int, error)
}
