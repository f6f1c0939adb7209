package render

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// MediaRoot is the public path under which article media is served.
const MediaRoot = "/images/blog"

// KindMedia is the AST node kind of a rewritten local image.
var KindMedia = ast.NewNodeKind("Media")

// mediaNode replaces a local image. A standalone node took the place of a
// paragraph holding only the image and renders as a figure; otherwise it
// stays inline.
type mediaNode struct {
	ast.BaseBlock
	block      domain.MediaBlock
	slug       domain.ArticleID
	locale     domain.Locale
	standalone bool
}

func (n *mediaNode) Kind() ast.NodeKind { return KindMedia }

func (n *mediaNode) Type() ast.NodeType {
	if n.standalone {
		return ast.TypeBlock
	}
	return ast.TypeInline
}

func (n *mediaNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Filename":   n.block.Filename,
		"Standalone": strconv.FormatBool(n.standalone),
	}, nil)
}

// IsRemote reports whether a media destination points outside the article.
func IsRemote(dest string) bool {
	if strings.HasPrefix(dest, "//") {
		return true
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

// MediaSrc returns the public path of a local media file.
func MediaSrc(slug domain.ArticleID, filename string) string {
	return MediaRoot + "/" + slug.String() + "/" + filename
}

// ResolveMedia builds the media block for a local image. Alt text comes
// from the caption table, then the markup alt text, then the filename.
// Captions come from the caption table, then the image title.
func ResolveMedia(slug domain.ArticleID, dest, alt, title string, captions CaptionTable) domain.MediaBlock {
	filename := path.Base(path.Clean(strings.SplitN(dest, "?", 2)[0]))
	block := domain.MediaBlock{
		Filename: filename,
		Src:      MediaSrc(slug, filename),
		Width:    domain.DefaultMediaWidth,
		Height:   domain.DefaultMediaHeight,
	}

	entry, hasEntry := captions[filename]
	for _, l := range domain.AllLocales() {
		caption := ""
		if hasEntry {
			caption = entry.Get(l)
		}
		if caption == "" {
			caption = title
		}
		block.Caption.Set(l, caption)

		altText := ""
		if hasEntry {
			altText = entry.Get(l)
		}
		if altText == "" {
			altText = alt
		}
		if altText == "" {
			altText = filename
		}
		block.Alt.Set(l, altText)
	}
	return block
}

// mediaTransformer rewrites local images into media nodes.
type mediaTransformer struct{}

func (t *mediaTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	env, _ := pc.Get(envKey).(Env)
	source := reader.Source()

	var images []*ast.Image
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			if !IsRemote(string(img.Destination)) {
				images = append(images, img)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	media := make([]domain.MediaBlock, 0, len(images))
	for _, img := range images {
		block := ResolveMedia(env.ArticleID, string(img.Destination), nodeText(img, source), string(img.Title), env.Captions)
		media = append(media, block)

		node := &mediaNode{block: block, slug: env.ArticleID, locale: env.Locale}
		parent := img.Parent()
		if para, ok := parent.(*ast.Paragraph); ok && para.ChildCount() == 1 && para.Parent() != nil {
			node.standalone = true
			para.Parent().ReplaceChild(para.Parent(), para, node)
			continue
		}
		parent.ReplaceChild(parent, img, node)
	}

	pc.Set(mediaKey, media)
}

// mediaRenderer renders media nodes as self-contained containers keyed by
// data-post-slug and data-filename.
type mediaRenderer struct{}

func (r *mediaRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMedia, r.render)
}

func (r *mediaRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	node := n.(*mediaNode)
	block := node.block
	alt := block.Alt.Get(node.locale)
	caption := block.Caption.Get(node.locale)

	tag, class := "span", "media-inline"
	if node.standalone {
		tag, class = "figure", "media-block"
	}

	_, _ = w.WriteString("<" + tag + ` class="` + class + `" data-image-component="true" data-post-slug="`)
	_, _ = w.Write(util.EscapeHTML([]byte(node.slug.String())))
	_, _ = w.WriteString(`" data-filename="`)
	_, _ = w.Write(util.EscapeHTML([]byte(block.Filename)))
	_, _ = w.WriteString(`" data-alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_, _ = w.WriteString(`"><img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(block.Src), false)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_, _ = w.WriteString(`" width="` + strconv.Itoa(block.Width) + `" height="` + strconv.Itoa(block.Height))
	_, _ = w.WriteString(`" loading="lazy" decoding="async">`)
	if node.standalone && caption != "" {
		_, _ = w.WriteString("<figcaption>")
		_, _ = w.Write(util.EscapeHTML([]byte(caption)))
		_, _ = w.WriteString("</figcaption>")
	}
	_, _ = w.WriteString("</" + tag + ">")
	if node.standalone {
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}
