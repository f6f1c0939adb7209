package render

import (
	"context"
	"fmt"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/logger"
)

// Renderer runs the default pipeline and renders standalone fragments with
// the same markup rules.
type Renderer struct {
	pipeline *Pipeline
	markup   *Markup
}

// NewRenderer creates a renderer with the frontmatter, markup and
// readingtime stages.
func NewRenderer() *Renderer {
	markup := NewMarkup()
	return &Renderer{
		pipeline: NewPipeline(
			FrontMatterStage{},
			&MarkupStage{Markup: markup},
			ReadingTimeStage{},
		),
		markup: markup,
	}
}

// Render renders one locale's source. On failure the returned error wraps
// ErrMalformedMarkup and the job must not be used.
func (r *Renderer) Render(ctx context.Context, id domain.ArticleID, locale domain.Locale, source []byte, captions CaptionTable) (*Job, error) {
	job := &Job{
		ArticleID: id,
		Locale:    locale,
		Source:    source,
		Captions:  captions,
	}
	if err := r.pipeline.Process(ctx, job); err != nil {
		logger.Warn("render %s/%s failed: %v", id, locale, err)
		return nil, fmt.Errorf("render %s/%s: %w", id, locale, err)
	}
	logger.Debug("rendered %s/%s: %d headings, %d media, %d min", id, locale, len(job.TOC), len(job.Content.Media), job.ReadingTime)
	return job, nil
}

// RenderFragment renders a piece of markup outside of a full document,
// such as one side of an aligned row.
func (r *Renderer) RenderFragment(id domain.ArticleID, locale domain.Locale, fragment string, captions CaptionTable) (_ domain.RenderedContent, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrMalformedMarkup, rec)
		}
	}()
	out, err := r.markup.Convert(Env{ArticleID: id, Locale: locale, Captions: captions}, []byte(fragment))
	if err != nil {
		return domain.RenderedContent{}, err
	}
	return out.Content, nil
}
