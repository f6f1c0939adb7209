package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// Get returns an article from the current snapshot.
func (s *SearchService) Get(_ context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	art, ok := snap.index.Article(id)
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return art, nil
}

// List returns every article, newest first.
func (s *SearchService) List(_ context.Context) ([]*domain.MultiLocaleArticle, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return newestFirst(snap.index.Articles()), nil
}

// Latest returns at most limit articles, newest first. A limit of zero
// or less returns every article.
func (s *SearchService) Latest(ctx context.Context, limit int) ([]*domain.MultiLocaleArticle, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return truncate(all, limit), nil
}

// Popular returns featured articles first, then the rest, each group
// newest first.
func (s *SearchService) Popular(ctx context.Context, limit int) ([]*domain.MultiLocaleArticle, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Featured && !all[j].Featured
	})
	return truncate(all, limit), nil
}

// Related returns the articles listed in id's metadata, then the articles
// sharing the most tags with it. Ties keep corpus order.
func (s *SearchService) Related(ctx context.Context, id domain.ArticleID, limit int) ([]*domain.MultiLocaleArticle, error) {
	art, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	seen := map[domain.ArticleID]bool{id: true}
	var out []*domain.MultiLocaleArticle
	for _, rid := range art.RelatedIDs {
		if seen[rid] {
			continue
		}
		if related, ok := snap.index.Article(rid); ok {
			seen[rid] = true
			out = append(out, related)
		}
	}

	tags := art.AllTags()
	type candidate struct {
		article *domain.MultiLocaleArticle
		shared  int
	}
	var candidates []candidate
	for _, other := range snap.index.Articles() {
		if seen[other.ID] {
			continue
		}
		if n := sharedTags(tags, other); n > 0 {
			candidates = append(candidates, candidate{other, n})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].shared > candidates[j].shared
	})
	for _, c := range candidates {
		out = append(out, c.article)
	}

	return truncate(out, limit), nil
}

// ByTag returns articles carrying tag in any locale, newest first.
func (s *SearchService) ByTag(ctx context.Context, tag string) ([]*domain.MultiLocaleArticle, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.MultiLocaleArticle
	for _, a := range all {
		if a.HasAnyTag([]string{tag}) {
			out = append(out, a)
		}
	}
	return out, nil
}

// CorpusStats summarises the current snapshot.
func (s *SearchService) CorpusStats(_ context.Context) (domain.CorpusStats, error) {
	snap, err := s.snapshot()
	if err != nil {
		return domain.CorpusStats{}, err
	}

	byMonth := make(map[string]int)
	for _, a := range snap.index.Articles() {
		byMonth[a.PublishDate.Format("2006-01")]++
	}

	return domain.CorpusStats{
		TotalArticles: snap.index.Len(),
		TotalTags:     len(snap.index.Tags()),
		ByMonth:       byMonth,
		Failed:        len(snap.failures),
		IndexID:       snap.id.String(),
		BuiltAt:       snap.builtAt,
	}, nil
}

// Failures returns the articles that could not be loaded into the current
// snapshot.
func (s *SearchService) Failures() []domain.LoadFailure {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	out := make([]domain.LoadFailure, len(snap.failures))
	copy(out, snap.failures)
	return out
}

func newestFirst(articles []*domain.MultiLocaleArticle) []*domain.MultiLocaleArticle {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishDate.After(articles[j].PublishDate)
	})
	return articles
}

func truncate(articles []*domain.MultiLocaleArticle, limit int) []*domain.MultiLocaleArticle {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}

func sharedTags(tags []string, other *domain.MultiLocaleArticle) int {
	n := 0
	for _, t := range tags {
		if other.HasAnyTag([]string{t}) {
			n++
		}
	}
	return n
}
