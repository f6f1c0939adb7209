package driving

import (
	"context"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// ArticleService loads articles from the content source.
type ArticleService interface {
	// Load assembles one article from the requested locales. Missing
	// locales get fallback values; a missing article is domain.ErrNotFound.
	Load(ctx context.Context, id domain.ArticleID, locales []domain.Locale) (*domain.MultiLocaleArticle, error)

	// LoadAll loads every article. Articles that fail are reported in the
	// failure list and never abort the batch.
	LoadAll(ctx context.Context) ([]*domain.MultiLocaleArticle, []domain.LoadFailure, error)

	// AvailableLocales returns the locales an article has sources for.
	AvailableLocales(ctx context.Context, id domain.ArticleID) ([]domain.Locale, error)

	// Exists reports whether an article exists.
	Exists(ctx context.Context, id domain.ArticleID) (bool, error)

	// Invalidate drops cached renders after sources change.
	Invalidate(ctx context.Context) error
}
