package search

import (
	"math"
	"strings"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/render"
)

// FieldKind is the part of an article a field was taken from.
type FieldKind uint8

// Field kinds in weight order.
const (
	FieldTitle FieldKind = iota
	FieldExcerpt
	FieldTags
	FieldBody
	FieldAuthor
)

var (
	fieldKinds   = []FieldKind{FieldTitle, FieldExcerpt, FieldTags, FieldBody, FieldAuthor}
	fieldNames   = [...]string{"title", "excerpt", "tags", "body", "author"}
	fieldWeights = [...]float64{3, 2, 2, 1, 1}
	totalWeight  = 9.0
)

// String returns the kind name used as the field name prefix.
func (k FieldKind) String() string {
	return fieldNames[k]
}

// Weight returns the relative weight of the kind.
func (k FieldKind) Weight() float64 {
	return fieldWeights[k]
}

// FieldName returns the name of a field, e.g. "excerpt.zh-TW".
func FieldName(kind FieldKind, locale domain.Locale) string {
	return kind.String() + "." + locale.String()
}

// Field is one indexed value of a document.
type Field struct {
	Name   string
	Kind   FieldKind
	Locale domain.Locale

	// Value is the original text, used for highlighting.
	Value string

	normalized string
	runes      []rune
	norm       float64
}

// Document is the denormalised search view of one article.
type Document struct {
	Article *domain.MultiLocaleArticle
	Fields  []Field
}

// NewDocument builds the fields of an article. Absent and malformed
// locales contribute no fields, and generated titles are skipped, so a
// placeholder such as "Untitled (en)" is never matched.
func NewDocument(a *domain.MultiLocaleArticle) Document {
	doc := Document{Article: a}
	for _, kind := range fieldKinds {
		for _, l := range domain.AllLocales() {
			if !a.Available.Get(l) || a.Malformed(l) {
				continue
			}
			if kind == FieldTitle && a.GeneratedTitle.Get(l) {
				continue
			}
			value := fieldValue(a, kind, l)
			if strings.TrimSpace(value) == "" {
				continue
			}
			normalized := Normalize(value)
			doc.Fields = append(doc.Fields, Field{
				Name:       FieldName(kind, l),
				Kind:       kind,
				Locale:     l,
				Value:      value,
				normalized: normalized,
				runes:      []rune(normalized),
				norm:       fieldNorm(value),
			})
		}
	}
	return doc
}

func fieldValue(a *domain.MultiLocaleArticle, kind FieldKind, l domain.Locale) string {
	switch kind {
	case FieldTitle:
		return a.Title.Get(l)
	case FieldExcerpt:
		return a.Excerpt.Get(l)
	case FieldTags:
		return strings.Join(a.Tags.Get(l), " ")
	case FieldBody:
		return render.StripMarkup(a.Sources.Get(l))
	case FieldAuthor:
		return a.Author.Name.Get(l)
	default:
		return ""
	}
}

// fieldNorm dampens matches in long fields: 1/sqrt(tokens), rounded to
// three decimals.
func fieldNorm(value string) float64 {
	n := len(strings.Fields(value))
	if n < 1 {
		n = 1
	}
	return math.Round(1/math.Sqrt(float64(n))*1000) / 1000
}
