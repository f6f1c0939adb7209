package domain

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied when shared metadata is absent or incomplete.
const (
	// DefaultHeroImage is used when an article declares no hero image.
	DefaultHeroImage = "/images/blog/default-hero.jpg"

	// DefaultAuthorImage is the avatar of the built-in author.
	DefaultAuthorImage = "/images/blog/default-author.png"

	// DefaultAuthorID identifies the built-in author.
	DefaultAuthorID = "default"

	// DefaultMediaWidth and DefaultMediaHeight size media blocks without
	// explicit dimensions.
	DefaultMediaWidth  = 800
	DefaultMediaHeight = 600

	// ExcerptLength is the number of characters kept for a generated excerpt.
	ExcerptLength = 150
)

// ArticleID is the opaque, case-sensitive slug of an article.
type ArticleID string

// Validate rejects empty ids and ids that could escape the content root.
func (id ArticleID) Validate() error {
	s := string(id)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty article id", ErrInvalidInput)
	}
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: article id %q", ErrInvalidInput, s)
	}
	return nil
}

// String returns the slug.
func (id ArticleID) String() string {
	return string(id)
}

// Author is the person (or persona) credited for an article.
type Author struct {
	ID          string            `json:"id"`
	Name        Localized[string] `json:"name"`
	Designation Localized[string] `json:"designation"`
	Bio         Localized[string] `json:"bio"`
	Image       string            `json:"image"`
	Socials     map[string]string `json:"socials,omitempty"`
}

// DefaultAuthor returns the built-in author used when an article names none.
func DefaultAuthor() Author {
	var designation Localized[string]
	designation.Set(LocaleJA, "AIアシスタント")
	designation.Set(LocaleEN, "AI Assistant")
	designation.Set(LocaleZhTW, "AI助手")
	designation.Set(LocaleZhCN, "AI助手")

	return Author{
		ID:          DefaultAuthorID,
		Name:        Uniform("NIHONGO-AI"),
		Designation: designation,
		Image:       DefaultAuthorImage,
	}
}

// ArticleMeta is the metadata shared by every locale of an article.
type ArticleMeta struct {
	// PublishDate defaults to the loader's clock when absent.
	PublishDate time.Time

	// HeroImage defaults to DefaultHeroImage.
	HeroImage string

	// Tags per locale. A flat tag list applies to every locale.
	Tags Localized[[]string]

	// Featured articles rank first in popularity listings.
	Featured bool

	// AuthorID references an entry in the author table.
	AuthorID string

	// EmbeddedAuthor is an inline author record, consulted when AuthorID
	// does not resolve.
	EmbeddedAuthor *Author

	// RelatedIDs lists hand-picked related articles.
	RelatedIDs []ArticleID
}

// MediaBlock is a local image rewritten into a structured figure.
type MediaBlock struct {
	Filename string            `json:"filename"`
	Src      string            `json:"src"`
	Alt      Localized[string] `json:"alt"`
	Caption  Localized[string] `json:"caption"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
}

// RenderedContent is the output of rendering one locale's markup.
type RenderedContent struct {
	HTML  string       `json:"html"`
	Media []MediaBlock `json:"media,omitempty"`
}

// IsEmpty returns true if nothing was rendered.
func (c RenderedContent) IsEmpty() bool {
	return c.HTML == "" && len(c.Media) == 0
}

// WarningKind classifies a non-fatal problem found while loading.
type WarningKind string

// Warning kinds.
const (
	// WarningMalformedMarkup means a locale could not be rendered and was
	// replaced with empty content.
	WarningMalformedMarkup WarningKind = "malformed_markup"

	// WarningMalformedMeta means shared metadata was unreadable and
	// defaults were applied.
	WarningMalformedMeta WarningKind = "malformed_meta"

	// WarningUnreadableSource means a locale source exists but could not
	// be read. The locale is treated as absent.
	WarningUnreadableSource WarningKind = "unreadable_source"

	// WarningAlignmentMismatch means the right-hand locale has markers the
	// left-hand locale does not.
	WarningAlignmentMismatch WarningKind = "alignment_mismatch"
)

// LocaleWarning records a degraded locale without failing the load.
type LocaleWarning struct {
	Locale Locale      `json:"locale"`
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail,omitempty"`
}

// MultiLocaleArticle is one article with every supported translation.
// For every locale Title and Excerpt hold a value, generated when the
// locale is absent.
type MultiLocaleArticle struct {
	ID                 ArticleID                  `json:"id"`
	Title              Localized[string]          `json:"title"`
	Excerpt            Localized[string]          `json:"excerpt"`
	Body               Localized[RenderedContent] `json:"body"`
	Tags               Localized[[]string]        `json:"tags"`
	HeroImage          string                     `json:"heroImage"`
	Author             Author                     `json:"author"`
	PublishDate        time.Time                  `json:"publishDate"`
	Featured           bool                       `json:"featured"`
	RelatedIDs         []ArticleID                `json:"relatedIds,omitempty"`
	TableOfContents    Localized[TocTree]         `json:"tableOfContents"`
	ReadingTimeMinutes Localized[int]             `json:"readingTimeMinutes"`

	// Available marks locales that have a source file.
	Available Localized[bool] `json:"available"`

	// GeneratedTitle marks locales whose Title is a placeholder rather
	// than text from the source.
	GeneratedTitle Localized[bool] `json:"generatedTitle"`

	// Sources holds each locale's markup with front matter removed.
	Sources Localized[string] `json:"-"`

	Warnings []LocaleWarning `json:"warnings,omitempty"`
}

// AvailableLocales returns the locales that have content, in canonical order.
func (a *MultiLocaleArticle) AvailableLocales() []Locale {
	var out []Locale
	for _, l := range AllLocales() {
		if a.Available.Get(l) {
			out = append(out, l)
		}
	}
	return out
}

// Malformed reports whether locale l failed to render.
func (a *MultiLocaleArticle) Malformed(l Locale) bool {
	for _, w := range a.Warnings {
		if w.Locale == l && w.Kind == WarningMalformedMarkup {
			return true
		}
	}
	return false
}

// AllTags returns the union of tags across locales in first-seen order.
func (a *MultiLocaleArticle) AllTags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tags := range a.Tags {
		for _, tag := range tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}

// HasAnyTag returns true if any locale carries any of tags.
func (a *MultiLocaleArticle) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, locTags := range a.Tags {
			for _, tag := range locTags {
				if tag == want {
					return true
				}
			}
		}
	}
	return false
}

// Partial returns an error wrapping ErrPartialContent when any locale is
// missing or degraded, or nil for a complete article.
func (a *MultiLocaleArticle) Partial() error {
	var missing []string
	for _, l := range AllLocales() {
		if !a.Available.Get(l) {
			missing = append(missing, l.String())
		}
	}
	if len(missing) == 0 && len(a.Warnings) == 0 {
		return nil
	}
	return fmt.Errorf("%w: article %s: missing [%s], %d warning(s)",
		ErrPartialContent, a.ID, strings.Join(missing, " "), len(a.Warnings))
}

// UntitledTitle is the generated title of a locale without content.
func UntitledTitle(l Locale) string {
	return fmt.Sprintf("Untitled (%s)", l)
}

// GenerateExcerpt derives an excerpt from the start of a body: the first
// ExcerptLength characters with line breaks flattened, followed by "...".
func GenerateExcerpt(body string) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	flat := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(string(runes))
	return flat + "..."
}

// RenderedLocale is everything derived from rendering one locale's source.
type RenderedLocale struct {
	Title string `json:"title"`

	// TitleGenerated is set when neither front matter nor an H1 supplied
	// the title.
	TitleGenerated bool `json:"titleGenerated,omitempty"`

	Excerpt     string          `json:"excerpt"`
	Content     RenderedContent `json:"content"`
	TOC         TocTree         `json:"toc"`
	ReadingTime int             `json:"readingTime"`

	// Source is the locale markup without front matter, kept for
	// alignment and search.
	Source string `json:"source"`

	// Tags and Date are copied from the front matter. They are used when
	// the shared metadata does not provide them.
	Tags []string `json:"tags,omitempty"`
	Date string   `json:"date,omitempty"`
}
