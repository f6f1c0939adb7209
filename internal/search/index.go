package search

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// DefaultThreshold is the highest per-field score accepted as a match.
const DefaultThreshold = 0.4

// scoreEpsilon stands in for an exact match so that exact matches in
// heavier fields still rank ahead of exact matches in lighter ones.
const scoreEpsilon = 2.220446049250313e-16

// Index is an immutable search index over a corpus snapshot.
type Index struct {
	docs      []Document
	byID      map[domain.ArticleID]int
	tags      []string
	threshold float64
}

// Option configures Build.
type Option func(*Index)

// WithThreshold overrides DefaultThreshold. Values outside (0,1] are ignored.
func WithThreshold(threshold float64) Option {
	return func(ix *Index) {
		if threshold > 0 && threshold <= 1 {
			ix.threshold = threshold
		}
	}
}

// Build indexes articles in the given order. It does not modify or retain
// ownership of the slice, and depends on nothing but its inputs.
func Build(articles []*domain.MultiLocaleArticle, opts ...Option) *Index {
	ix := &Index{
		docs:      make([]Document, 0, len(articles)),
		byID:      make(map[domain.ArticleID]int, len(articles)),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(ix)
	}

	tagSet := make(map[string]bool)
	for _, a := range articles {
		if a == nil {
			continue
		}
		if _, dup := ix.byID[a.ID]; dup {
			continue
		}
		ix.byID[a.ID] = len(ix.docs)
		ix.docs = append(ix.docs, NewDocument(a))
		for _, tag := range a.AllTags() {
			tagSet[tag] = true
		}
	}

	ix.tags = make([]string, 0, len(tagSet))
	for tag := range tagSet {
		ix.tags = append(ix.tags, tag)
	}
	sort.Strings(ix.tags)

	return ix
}

// Len returns the number of indexed articles.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Tags returns every tag across all locales, sorted.
func (ix *Index) Tags() []string {
	return slices.Clone(ix.tags)
}

// Article returns the indexed article with the given id.
func (ix *Index) Article(id domain.ArticleID) (*domain.MultiLocaleArticle, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return nil, false
	}
	return ix.docs[i].Article, true
}

// Articles returns every indexed article in corpus order.
func (ix *Index) Articles() []*domain.MultiLocaleArticle {
	out := make([]*domain.MultiLocaleArticle, len(ix.docs))
	for i, doc := range ix.docs {
		out[i] = doc.Article
	}
	return out
}

// Search matches query against every document. An empty or blank query
// returns every document in corpus order with score 0 and no highlights.
// Otherwise results are ordered best first, ties kept in corpus order.
// Fields of locale are listed first in MatchedFields.
func (ix *Index) Search(query string, locale domain.Locale) []domain.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]domain.SearchResult, len(ix.docs))
		for i, doc := range ix.docs {
			results[i] = domain.SearchResult{ArticleID: doc.Article.ID, Article: doc.Article}
		}
		return results
	}

	pattern := Normalize(query)
	patternRunes := []rune(pattern)
	highlighter := NewHighlighter(query)

	var results []domain.SearchResult
	for _, doc := range ix.docs {
		total := 1.0
		var matched []Field
		for _, f := range doc.Fields {
			score, ok := matchScore(patternRunes, f.runes, pattern, f.normalized, ix.threshold)
			if !ok {
				continue
			}
			if score == 0 {
				score = scoreEpsilon
			}
			total *= math.Pow(score, f.Kind.Weight()/totalWeight*f.norm)
			matched = append(matched, f)
		}
		if len(matched) == 0 {
			continue
		}

		result := domain.SearchResult{
			ArticleID:     doc.Article.ID,
			Score:         total,
			MatchedFields: orderFields(matched, locale),
			Article:       doc.Article,
		}
		for _, f := range matched {
			if fragment, ok := highlighter.Highlight(f.Value, f.Kind == FieldBody); ok {
				if result.Highlights == nil {
					result.Highlights = make(map[string]string)
				}
				result.Highlights[f.Name] = fragment
			}
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return domain.MoreRelevant(results[i], results[j])
	})
	return results
}

// orderFields lists fields of locale first, each group in index order.
func orderFields(fields []Field, locale domain.Locale) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Locale == locale {
			names = append(names, f.Name)
		}
	}
	for _, f := range fields {
		if f.Locale != locale {
			names = append(names, f.Name)
		}
	}
	return names
}
