// Package memory provides an in-memory ContentSource for tests and for
// embedding small corpora.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Article is the raw material of one article.
type Article struct {
	// Locales maps each present locale to its source, front matter included.
	Locales map[domain.Locale]string

	// Meta is the shared metadata. Nil means none.
	Meta *domain.ArticleMeta

	// MetaErr, when set, is returned by ReadMeta in place of Meta.
	MetaErr error

	Captions map[string]domain.Localized[string]
}

// Source is an in-memory content source.
type Source struct {
	mu       sync.RWMutex
	articles map[domain.ArticleID]Article
	order    []domain.ArticleID
	authors  map[string]domain.Author

	delay atomic.Int64
	reads atomic.Int64
}

// NewSource creates an empty source.
func NewSource() *Source {
	return &Source{
		articles: make(map[domain.ArticleID]Article),
		authors:  make(map[string]domain.Author),
	}
}

// Put adds or replaces an article. New ids are listed after existing ones.
func (s *Source) Put(id domain.ArticleID, a Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.articles[id]; !exists {
		s.order = append(s.order, id)
	}
	s.articles[id] = a
}

// Remove deletes an article.
func (s *Source) Remove(id domain.ArticleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.articles[id]; !exists {
		return
	}
	delete(s.articles, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// PutAuthor adds or replaces an author.
func (s *Source) PutAuthor(a domain.Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors[a.ID] = a
}

// SetReadDelay makes every ReadLocale call wait d, or until its context ends.
func (s *Source) SetReadDelay(d time.Duration) {
	s.delay.Store(int64(d))
}

// Reads returns the number of ReadLocale calls served.
func (s *Source) Reads() int {
	return int(s.reads.Load())
}

// ListArticles returns ids in insertion order.
func (s *Source) ListArticles(ctx context.Context) ([]domain.ArticleID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ArticleID, len(s.order))
	copy(out, s.order)
	return out, nil
}

// ArticleExists reports whether id was added.
func (s *Source) ArticleExists(_ context.Context, id domain.ArticleID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.articles[id]
	return ok, nil
}

// ReadLocale returns the source of one locale.
func (s *Source) ReadLocale(ctx context.Context, id domain.ArticleID, locale domain.Locale) ([]byte, error) {
	if d := time.Duration(s.delay.Load()); d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.reads.Add(1)

	a, err := s.article(id)
	if err != nil {
		return nil, err
	}
	src, ok := a.Locales[locale]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", id, locale, domain.ErrNotFound)
	}
	return []byte(src), nil
}

// ReadMeta returns the article metadata.
func (s *Source) ReadMeta(_ context.Context, id domain.ArticleID) (*domain.ArticleMeta, error) {
	a, err := s.article(id)
	if err != nil {
		return nil, err
	}
	if a.MetaErr != nil {
		return nil, a.MetaErr
	}
	if a.Meta == nil {
		return nil, fmt.Errorf("%s meta: %w", id, domain.ErrNotFound)
	}
	meta := *a.Meta
	return &meta, nil
}

// ReadCaptions returns the caption table, possibly empty.
func (s *Source) ReadCaptions(_ context.Context, id domain.ArticleID) (map[string]domain.Localized[string], error) {
	a, err := s.article(id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Localized[string], len(a.Captions))
	for k, v := range a.Captions {
		out[k] = v
	}
	return out, nil
}

// ReadAuthor returns an author by id.
func (s *Source) ReadAuthor(_ context.Context, authorID string) (*domain.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.authors[authorID]
	if !ok {
		return nil, fmt.Errorf("author %s: %w", authorID, domain.ErrNotFound)
	}
	return &a, nil
}

func (s *Source) article(id domain.ArticleID) (Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	if !ok {
		return Article{}, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}
