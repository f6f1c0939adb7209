package driving

import (
	"context"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// CompareService produces side-by-side views of two locales.
type CompareService interface {
	// Compare aligns the left and right locales of an article. Rows follow
	// the left locale's marker order and each cell is rendered HTML.
	Compare(ctx context.Context, id domain.ArticleID, left, right domain.Locale) (*domain.Comparison, error)
}
