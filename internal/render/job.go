package render

import "github.com/custodia-labs/parallax/internal/core/domain"

// CaptionTable maps media filenames to per-locale caption text.
type CaptionTable map[string]domain.Localized[string]

// Job carries one (article, locale) render through the pipeline.
// Stages read the input fields and fill the output fields.
type Job struct {
	ArticleID domain.ArticleID
	Locale    domain.Locale
	Source    []byte
	Captions  CaptionTable

	Front       FrontMatter
	Body        []byte
	Content     domain.RenderedContent
	TOC         domain.TocTree
	ReadingTime int
}
