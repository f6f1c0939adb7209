package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
	"github.com/custodia-labs/parallax/internal/logger"
	"github.com/custodia-labs/parallax/internal/metrics"
	"github.com/custodia-labs/parallax/internal/search"
)

// Ensure SearchService implements the interfaces.
var (
	_ driving.SearchService    = (*SearchService)(nil)
	_ driving.CatalogueService = (*SearchService)(nil)
)

// snapshot is one immutable generation of the index.
type snapshot struct {
	index    *search.Index
	id       uuid.UUID
	builtAt  time.Time
	failures []domain.LoadFailure
}

// SearchService answers queries against the current index snapshot.
// Rebuild replaces the snapshot atomically; queries never see a partly
// built index.
type SearchService struct {
	articles driving.ArticleService
	config   domain.SearchSettings
	metrics  *metrics.Metrics
	now      func() time.Time

	current   atomic.Pointer[snapshot]
	rebuildMu sync.Mutex
}

// NewSearchService creates a new search service. Call Rebuild before the
// first query.
func NewSearchService(articles driving.ArticleService, config domain.SearchSettings) *SearchService {
	if config.Threshold <= 0 || config.Threshold > 1 {
		config.Threshold = search.DefaultThreshold
	}
	return &SearchService{
		articles: articles,
		config:   config,
		now:      time.Now,
	}
}

// SetMetrics sets the metrics sink.
func (s *SearchService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetClock replaces the clock used to stamp snapshots.
func (s *SearchService) SetClock(now func() time.Time) {
	s.now = now
}

// Rebuild loads the corpus and swaps in a new index. Concurrent rebuilds
// are serialised; a failed rebuild keeps the previous snapshot.
func (s *SearchService) Rebuild(ctx context.Context) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	articles, failures, err := s.articles.LoadAll(ctx)
	if err != nil {
		s.metrics.IndexBuilt(0, 0, err)
		return fmt.Errorf("rebuild index: %w", err)
	}

	next := &snapshot{
		index:    search.Build(articles, search.WithThreshold(s.config.Threshold)),
		id:       uuid.New(),
		builtAt:  s.now(),
		failures: failures,
	}
	s.current.Store(next)

	s.metrics.IndexBuilt(time.Since(start), next.index.Len(), nil)
	logger.Info("index %s built: %d articles, %d tags, %d failed in %s",
		next.id, next.index.Len(), len(next.index.Tags()), len(failures), time.Since(start).Round(time.Millisecond))
	return nil
}

// snapshot returns the current snapshot or ErrIndexNotBuilt.
func (s *SearchService) snapshot() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrIndexNotBuilt
	}
	return snap, nil
}

// Search queries the index, then filters, sorts and paginates.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if opts.Offset < 0 || opts.Limit < 0 {
		return nil, fmt.Errorf("%w: negative offset or limit", domain.ErrInvalidInput)
	}

	start := time.Now()
	results, err := s.query(ctx, query, opts)
	if err != nil {
		s.metrics.Searched(time.Since(start), "error", 0)
		return nil, err
	}
	page := search.Paginate(results, opts.Offset, opts.Limit)

	s.metrics.Searched(time.Since(start), resultType(query, len(results)), len(page))
	logger.Debug("search %q (%s, sort %s): %d results, %d returned", query, opts.Locale, opts.Sort, len(results), len(page))
	return page, nil
}

// Stats summarises every result of a query, ignoring pagination.
func (s *SearchService) Stats(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchStats, error) {
	results, err := s.query(ctx, query, opts)
	if err != nil {
		return domain.SearchStats{}, err
	}
	return search.Stats(results), nil
}

// query runs the unpaginated part of a search.
func (s *SearchService) query(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !opts.Locale.IsValid() {
		return nil, fmt.Errorf("%w: locale #%d", domain.ErrUnsupportedLocale, opts.Locale)
	}
	mode, err := domain.ParseSortMode(string(opts.Sort))
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	results := snap.index.Search(query, opts.Locale)
	results = search.FilterByTag(results, opts.Tags)
	results = search.FilterByDate(results, opts.From, opts.To)
	return search.Sort(results, mode, opts.Locale)
}

// Tags returns every tag in the current snapshot.
func (s *SearchService) Tags(_ context.Context) ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.index.Tags(), nil
}

func resultType(query string, n int) string {
	switch {
	case strings.TrimSpace(query) == "":
		return "browse"
	case n == 0:
		return "zero_result"
	default:
		return "hit"
	}
}
