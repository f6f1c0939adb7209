package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/parallax/internal/align"
	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
	"github.com/custodia-labs/parallax/internal/logger"
	"github.com/custodia-labs/parallax/internal/metrics"
	"github.com/custodia-labs/parallax/internal/render"
)

// Ensure CompareService implements the interface.
var _ driving.CompareService = (*CompareService)(nil)

// CompareService aligns two locales of an article sentence by sentence.
type CompareService struct {
	source   driven.ContentSource
	renderer *render.Renderer
	metrics  *metrics.Metrics
}

// NewCompareService creates a new compare service.
func NewCompareService(source driven.ContentSource, renderer *render.Renderer) *CompareService {
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	return &CompareService{source: source, renderer: renderer}
}

// SetMetrics sets the metrics sink.
func (s *CompareService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// comparedSide is one locale prepared for alignment.
type comparedSide struct {
	title string
	body  string
}

// Compare aligns the left and right locales of an article. Both locales
// must exist; rows follow the left locale's marker order.
func (s *CompareService) Compare(
	ctx context.Context,
	id domain.ArticleID,
	left, right domain.Locale,
) (*domain.Comparison, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	for _, l := range []domain.Locale{left, right} {
		if !l.IsValid() {
			return nil, fmt.Errorf("%w: locale #%d", domain.ErrUnsupportedLocale, l)
		}
	}

	exists, err := s.source.ArticleExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check article %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}

	captions, err := s.source.ReadCaptions(ctx, id)
	if err != nil {
		logger.Warn("captions for %s unreadable, using none: %v", id, err)
	}

	var sides [2]comparedSide
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range []domain.Locale{left, right} {
		g.Go(func() error {
			side, err := s.readSide(gctx, id, l)
			if err != nil {
				return err
			}
			sides[i] = side
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows, rightOnly := align.Align(sides[0].body, sides[1].body)
	if len(rightOnly) > 0 {
		logger.Warn("compare %s %s/%s: %s markers missing on the left: %s",
			id, left, right, domain.WarningAlignmentMismatch, strings.Join(rightOnly, ", "))
	}
	s.metrics.Compared(len(rightOnly) > 0)

	table := render.CaptionTable(captions)
	for i := range rows {
		rows[i].LeftText = s.renderCell(id, left, rows[i].LeftText, table)
		rows[i].RightText = s.renderCell(id, right, rows[i].RightText, table)
	}

	logger.Debug("compare %s %s/%s: %d rows", id, left, right, len(rows))
	return &domain.Comparison{
		ArticleID: id,
		Left:      left,
		Right:     right,
		Title:     [2]string{sides[0].title, sides[1].title},
		Rows:      rows,
		RightOnly: rightOnly,
	}, nil
}

// readSide loads one locale source and separates its title from the body.
func (s *CompareService) readSide(ctx context.Context, id domain.ArticleID, l domain.Locale) (comparedSide, error) {
	src, err := s.source.ReadLocale(ctx, id, l)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return comparedSide{}, fmt.Errorf("article %s has no %s locale: %w", id, l, domain.ErrNotFound)
		}
		return comparedSide{}, fmt.Errorf("read %s/%s: %w", id, l, err)
	}

	fm, body, err := render.SplitFrontMatter(src)
	if err != nil {
		logger.Warn("compare %s/%s: %v, aligning raw source", id, l, err)
		return comparedSide{title: domain.UntitledTitle(l), body: string(src)}, nil
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = domain.UntitledTitle(l)
	}
	return comparedSide{title: title, body: string(body)}, nil
}

// renderCell renders one side of a row. Empty cells stay empty; cells that
// fail to render are shown as escaped text.
func (s *CompareService) renderCell(id domain.ArticleID, l domain.Locale, text string, captions render.CaptionTable) string {
	if text == "" {
		return ""
	}
	out, err := s.renderer.RenderFragment(id, l, text, captions)
	if err != nil {
		logger.Warn("compare %s/%s: cell not rendered: %v", id, l, err)
		return "<p>" + html.EscapeString(text) + "</p>"
	}
	return strings.TrimSpace(out.HTML)
}
