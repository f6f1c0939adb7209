package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/custodia-labs/parallax/internal/align"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

// Env identifies the document being converted. Media blocks use it to
// build their container attributes and resolve captions.
type Env struct {
	ArticleID domain.ArticleID
	Locale    domain.Locale
	Captions  CaptionTable
}

// Converted is the result of converting one markup document.
type Converted struct {
	Content domain.RenderedContent
	TOC     domain.TocTree
}

var (
	envKey   = parser.NewContextKey()
	tocKey   = parser.NewContextKey()
	mediaKey = parser.NewContextKey()
)

// Markup converts markdown into HTML with media rewriting and heading ids.
// It is safe for concurrent use.
type Markup struct {
	md goldmark.Markdown
}

// NewMarkup creates a converter with GFM extensions and raw HTML enabled.
func NewMarkup() *Markup {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&headingTransformer{}, 200),
				util.Prioritized(&mediaTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&mediaRenderer{}, 100),
			),
		),
	)
	return &Markup{md: md}
}

// Convert renders src. Alignment markers are removed first so a marker
// sharing a line with text does not turn that line into raw HTML.
func (m *Markup) Convert(env Env, src []byte) (Converted, error) {
	pc := parser.NewContext()
	pc.Set(envKey, env)

	var buf bytes.Buffer
	if err := m.md.Convert(align.StripMarkers(src), &buf, parser.WithContext(pc)); err != nil {
		return Converted{}, fmt.Errorf("%w: %v", domain.ErrMalformedMarkup, err)
	}

	out := Converted{
		Content: domain.RenderedContent{HTML: buf.String()},
	}
	if toc, ok := pc.Get(tocKey).(domain.TocTree); ok {
		out.TOC = toc
	}
	if media, ok := pc.Get(mediaKey).([]domain.MediaBlock); ok {
		out.Content.Media = media
	}
	return out, nil
}

// MarkupStage fills Job.Content and Job.TOC from Job.Body.
type MarkupStage struct {
	Markup *Markup
}

// Name returns the stage name.
func (s *MarkupStage) Name() string { return "markup" }

// Process converts the job body.
func (s *MarkupStage) Process(_ context.Context, job *Job) error {
	out, err := s.Markup.Convert(Env{
		ArticleID: job.ArticleID,
		Locale:    job.Locale,
		Captions:  job.Captions,
	}, job.Body)
	if err != nil {
		return err
	}
	job.Content = out.Content
	job.TOC = out.TOC
	return nil
}

// nodeText concatenates the literal text beneath n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
