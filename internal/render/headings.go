package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// headingTransformer numbers headings in document order and records them
// as the table of contents. Ids never depend on heading text.
type headingTransformer struct{}

func (t *headingTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	toc := domain.TocTree{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := domain.HeadingID(len(toc))
		h.SetAttributeString("id", []byte(id))
		toc = append(toc, domain.TocEntry{
			ID:    id,
			Level: h.Level,
			Title: nodeText(h, source),
		})
		return ast.WalkSkipChildren, nil
	})

	pc.Set(tocKey, toc)
}
