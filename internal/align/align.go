// Package align pairs the sentences of two locales of one article.
//
// Authors mark sentence units with ordinal comments such as <!-- s1 -->.
// A unit's text runs from its marker to the next HTML comment, marker or
// not, or to the end of the document. Rows follow the left locale's marker
// order.
package align

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

var (
	markerRe = regexp.MustCompile(`<!--\s*(s\d+)\s*-->`)

	orderedItemRe = regexp.MustCompile(`^\d+[.)]\s`)
)

// Classify infers the structural tag of a sentence from its leading
// characters. Anything unrecognised is a paragraph.
func Classify(text string) domain.StructuralTag {
	switch {
	case strings.HasPrefix(text, "# "):
		return domain.TagH1
	case strings.HasPrefix(text, "## "):
		return domain.TagH2
	case strings.HasPrefix(text, "### "):
		return domain.TagH3
	case strings.HasPrefix(text, "- "), strings.HasPrefix(text, "* "), strings.HasPrefix(text, "+ "):
		return domain.TagListItem
	case orderedItemRe.MatchString(text):
		return domain.TagListItem
	default:
		return domain.TagParagraph
	}
}

// Extract returns the marked sentences of a document in document order.
// Text before the first marker belongs to no sentence.
func Extract(source string) []domain.TaggedSentence {
	locs := markerRe.FindAllStringSubmatchIndex(source, -1)
	sentences := make([]domain.TaggedSentence, 0, len(locs))

	for i, loc := range locs {
		end := len(source)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		span := source[loc[1]:end]
		if cut := strings.Index(span, "<!--"); cut >= 0 {
			span = span[:cut]
		}
		text := strings.TrimSpace(span)
		sentences = append(sentences, domain.TaggedSentence{
			MarkerID: source[loc[2]:loc[3]],
			Text:     text,
			Tag:      Classify(text),
		})
	}
	return sentences
}

// Join pairs left and right sentences by marker id. Every left sentence
// yields exactly one row, in left order. A missing right counterpart is an
// explicit empty side. When a marker repeats on the right, its last
// occurrence is used.
func Join(left, right []domain.TaggedSentence) []domain.AlignedRow {
	byMarker := make(map[string]domain.TaggedSentence, len(right))
	for _, s := range right {
		byMarker[s.MarkerID] = s
	}

	rows := make([]domain.AlignedRow, 0, len(left))
	for _, l := range left {
		row := domain.AlignedRow{
			MarkerID: l.MarkerID,
			LeftText: l.Text,
			LeftTag:  l.Tag,
		}
		if r, ok := byMarker[l.MarkerID]; ok {
			row.RightText = r.Text
			row.RightTag = r.Tag
		} else {
			row.RightMissing = true
		}
		rows = append(rows, row)
	}
	return rows
}

// Unmatched returns the right marker ids with no left counterpart, in
// right order and without duplicates.
func Unmatched(left, right []domain.TaggedSentence) []string {
	inLeft := make(map[string]bool, len(left))
	for _, s := range left {
		inLeft[s.MarkerID] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, s := range right {
		if !inLeft[s.MarkerID] && !seen[s.MarkerID] {
			seen[s.MarkerID] = true
			out = append(out, s.MarkerID)
		}
	}
	return out
}

// Align extracts both documents and joins them.
func Align(leftSource, rightSource string) (rows []domain.AlignedRow, rightOnly []string) {
	left := Extract(leftSource)
	right := Extract(rightSource)
	return Join(left, right), Unmatched(left, right)
}

// StripMarkers removes alignment markers, leaving the surrounding text.
func StripMarkers(src []byte) []byte {
	return markerRe.ReplaceAll(src, nil)
}
