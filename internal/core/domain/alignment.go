package domain

import "fmt"

// StructuralTag is the block-level shape of an aligned sentence.
type StructuralTag uint8

// Structural tags. TagNone marks the absent side of a row.
const (
	TagNone StructuralTag = iota
	TagH1
	TagH2
	TagH3
	TagListItem
	TagParagraph
)

var tagNames = [...]string{"", "h1", "h2", "h3", "li", "p"}

// String returns the HTML element name of the tag, or "" for TagNone.
func (t StructuralTag) String() string {
	if int(t) >= len(tagNames) {
		return ""
	}
	return tagNames[t]
}

// IsHeading returns true for h1..h3.
func (t StructuralTag) IsHeading() bool {
	return t == TagH1 || t == TagH2 || t == TagH3
}

// MarshalText implements encoding.TextMarshaler.
func (t StructuralTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *StructuralTag) UnmarshalText(text []byte) error {
	for i, name := range tagNames {
		if name == string(text) {
			*t = StructuralTag(i)
			return nil
		}
	}
	return fmt.Errorf("%w: structural tag %q", ErrInvalidInput, text)
}

// TaggedSentence is the text following one alignment marker.
type TaggedSentence struct {
	MarkerID string
	Text     string
	Tag      StructuralTag
}

// AlignedRow pairs the left and right spans sharing a marker.
// When the right-hand locale lacks the marker, RightText is empty,
// RightTag is TagNone and RightMissing is set.
type AlignedRow struct {
	MarkerID     string        `json:"markerId"`
	LeftText     string        `json:"leftText"`
	RightText    string        `json:"rightText"`
	LeftTag      StructuralTag `json:"leftTag"`
	RightTag     StructuralTag `json:"rightTag"`
	RightMissing bool          `json:"rightMissing,omitempty"`
}

// Comparison is a side-by-side view of two locales of an article.
type Comparison struct {
	ArticleID ArticleID    `json:"articleId"`
	Left      Locale       `json:"left"`
	Right     Locale       `json:"right"`
	Title     [2]string    `json:"title"`
	Rows      []AlignedRow `json:"rows"`

	// RightOnly lists markers present only in the right-hand locale.
	// They produce no rows.
	RightOnly []string `json:"rightOnly,omitempty"`
}
