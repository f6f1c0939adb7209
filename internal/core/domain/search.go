package domain

import (
	"fmt"
	"time"
)

// SortMode selects the ordering of search results.
type SortMode string

// Available sort modes.
const (
	// SortRelevance orders by ascending score (best match first).
	SortRelevance SortMode = "relevance"

	// SortDate orders by descending publish date.
	SortDate SortMode = "date"

	// SortTitle orders by title along the requested locale's fallback chain.
	SortTitle SortMode = "title"
)

// ParseSortMode converts a string into a SortMode. Empty means relevance.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(s); m {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortDate, SortTitle:
		return m, nil
	default:
		return "", fmt.Errorf("%w: sort mode %q", ErrInvalidInput, s)
	}
}

// String returns the string representation.
func (m SortMode) String() string {
	return string(m)
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Locale is the reader's locale. Its fields are reported first and
	// title sorting starts from it.
	Locale Locale

	// Tags restricts results to articles carrying any of these tags.
	Tags []string

	// Sort is the result ordering.
	Sort SortMode

	// From and To restrict results to a publish date range; zero means open.
	From time.Time
	To   time.Time

	// Limit is the maximum number of results; zero means unlimited.
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// SearchResult is one scored match.
// Score is in [0,1]; lower is more relevant. An empty query yields 0.
type SearchResult struct {
	ArticleID     ArticleID           `json:"articleId"`
	Score         float64             `json:"score"`
	MatchedFields []string            `json:"matchedFields,omitempty"`
	Highlights    map[string]string   `json:"highlights,omitempty"`
	Article       *MultiLocaleArticle `json:"article,omitempty"`
}

// MoreRelevant reports whether a ranks before b.
func MoreRelevant(a, b SearchResult) bool {
	return a.Score < b.Score
}

// FieldCount is a matched field and how many results matched it.
type FieldCount struct {
	Field string `json:"field"`
	Count int    `json:"count"`
}

// SearchStats summarises a result set.
type SearchStats struct {
	Total        int          `json:"total"`
	AverageScore float64      `json:"averageScore"`
	TopFields    []FieldCount `json:"topFields"`
}

// CorpusStats summarises the loaded articles.
type CorpusStats struct {
	TotalArticles int            `json:"totalArticles"`
	TotalTags     int            `json:"totalTags"`
	ByMonth       map[string]int `json:"byMonth"`
	Failed        int            `json:"failed"`
	IndexID       string         `json:"indexId,omitempty"`
	BuiltAt       time.Time      `json:"builtAt"`
}

// LoadFailure records an article that could not be loaded in a batch.
type LoadFailure struct {
	ID  ArticleID
	Err error
}
