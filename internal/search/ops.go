package search

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// FilterByTag keeps results whose article carries at least one of tags in
// any locale. An empty tag list returns results unchanged.
func FilterByTag(results []domain.SearchResult, tags []string) []domain.SearchResult {
	if len(tags) == 0 {
		return results
	}
	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Article != nil && r.Article.HasAnyTag(tags) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterByDate keeps results published within [from, to]. A zero bound is
// open.
func FilterByDate(results []domain.SearchResult, from, to time.Time) []domain.SearchResult {
	if from.IsZero() && to.IsZero() {
		return results
	}
	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Article == nil {
			continue
		}
		date := r.Article.PublishDate
		if !from.IsZero() && date.Before(from) {
			continue
		}
		if !to.IsZero() && date.After(to) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Sort returns a copy of results ordered by mode. Every mode is stable.
func Sort(results []domain.SearchResult, mode domain.SortMode, locale domain.Locale) ([]domain.SearchResult, error) {
	sorted := make([]domain.SearchResult, len(results))
	copy(sorted, results)

	switch mode {
	case domain.SortRelevance, "":
		sort.SliceStable(sorted, func(i, j int) bool {
			return domain.MoreRelevant(sorted[i], sorted[j])
		})
	case domain.SortDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return publishDate(sorted[i]).After(publishDate(sorted[j]))
		})
	case domain.SortTitle:
		col := collate.New(languageTag(locale))
		keys := make([]string, len(sorted))
		for i, r := range sorted {
			keys[i] = SortTitle(r.Article, locale)
		}
		idx := make([]int, len(sorted))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return col.CompareString(keys[idx[a]], keys[idx[b]]) < 0
		})
		reordered := make([]domain.SearchResult, len(sorted))
		for i, from := range idx {
			reordered[i] = sorted[from]
		}
		sorted = reordered
	default:
		return nil, fmt.Errorf("%w: sort mode %q", domain.ErrInvalidInput, mode)
	}
	return sorted, nil
}

func publishDate(r domain.SearchResult) time.Time {
	if r.Article == nil {
		return time.Time{}
	}
	return r.Article.PublishDate
}

// SortTitle returns the title used to order an article for a reader of
// locale: the first locale with content along the fallback chain.
func SortTitle(a *domain.MultiLocaleArticle, locale domain.Locale) string {
	if a == nil {
		return ""
	}
	for _, l := range locale.FallbackChain() {
		if a.Available.Get(l) && a.Title.Get(l) != "" {
			return a.Title.Get(l)
		}
	}
	title, _, _ := domain.FirstNonEmpty(a.Title, locale.FallbackChain())
	return title
}

func languageTag(locale domain.Locale) language.Tag {
	switch locale {
	case domain.LocaleJA:
		return language.Japanese
	case domain.LocaleZhTW:
		return language.TraditionalChinese
	case domain.LocaleZhCN:
		return language.SimplifiedChinese
	default:
		return language.English
	}
}

// Paginate applies offset and limit. A limit of zero means no limit.
func Paginate(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []domain.SearchResult{}
	}
	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return results[offset:end]
}

// topFieldCount is the number of fields reported by Stats.
const topFieldCount = 5

// Stats summarises a result set: its size, mean score, and the most
// frequently matched fields.
func Stats(results []domain.SearchResult) domain.SearchStats {
	stats := domain.SearchStats{Total: len(results), TopFields: []domain.FieldCount{}}
	if len(results) == 0 {
		return stats
	}

	var sum float64
	counts := make(map[string]int)
	var order []string
	for _, r := range results {
		sum += r.Score
		for _, f := range r.MatchedFields {
			if counts[f] == 0 {
				order = append(order, f)
			}
			counts[f]++
		}
	}
	stats.AverageScore = sum / float64(len(results))

	for _, f := range order {
		stats.TopFields = append(stats.TopFields, domain.FieldCount{Field: f, Count: counts[f]})
	}
	sort.SliceStable(stats.TopFields, func(i, j int) bool {
		return stats.TopFields[i].Count > stats.TopFields[j].Count
	})
	if len(stats.TopFields) > topFieldCount {
		stats.TopFields = stats.TopFields[:topFieldCount]
	}
	return stats
}
