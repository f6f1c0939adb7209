package driven

import (
	"context"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// ContentSource reads the raw material of articles.
// Implementations must be safe for concurrent use.
type ContentSource interface {
	// ListArticles returns every article id, in a stable order.
	ListArticles(ctx context.Context) ([]domain.ArticleID, error)

	// ArticleExists reports whether an article directory exists.
	ArticleExists(ctx context.Context, id domain.ArticleID) (bool, error)

	// ReadLocale returns the source of one locale, front matter included.
	// Returns domain.ErrNotFound when the locale has no source.
	ReadLocale(ctx context.Context, id domain.ArticleID, locale domain.Locale) ([]byte, error)

	// ReadMeta returns the shared metadata of an article.
	// Returns domain.ErrNotFound when there is none; other errors mean the
	// metadata exists but is unreadable.
	ReadMeta(ctx context.Context, id domain.ArticleID) (*domain.ArticleMeta, error)

	// ReadCaptions returns the caption table of an article keyed by media
	// filename. An article without captions yields an empty table.
	ReadCaptions(ctx context.Context, id domain.ArticleID) (map[string]domain.Localized[string], error)

	// ReadAuthor returns an author by id.
	// Returns domain.ErrNotFound when the author is unknown.
	ReadAuthor(ctx context.Context, authorID string) (*domain.Author, error)
}
