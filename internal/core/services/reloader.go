package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/parallax/internal/core/ports/driven"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
	"github.com/custodia-labs/parallax/internal/logger"
)

// Reloader rebuilds the index when content changes. Bursts of changes
// collapse into one rebuild, and rebuilds are at least minInterval apart.
type Reloader struct {
	watcher  driven.Watcher
	articles driving.ArticleService
	index    driving.SearchService
	limiter  *rate.Limiter

	pending chan string

	// rebuilt, if set, is called after every reload attempt.
	rebuilt func(err error)
}

// NewReloader creates a reloader. A non-positive minInterval disables
// throttling.
func NewReloader(
	watcher driven.Watcher,
	articles driving.ArticleService,
	index driving.SearchService,
	minInterval time.Duration,
) *Reloader {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Reloader{
		watcher:  watcher,
		articles: articles,
		index:    index,
		limiter:  rate.NewLimiter(limit, 1),
		pending:  make(chan string, 1),
	}
}

// OnReload registers a callback run after every reload attempt.
func (r *Reloader) OnReload(fn func(err error)) {
	r.rebuilt = fn
}

// Run watches for changes until ctx is cancelled. Reload failures are
// logged and keep the previous index.
func (r *Reloader) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- r.watcher.Watch(ctx, r.notify)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watchErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watch content: %w", err)
			}
			return nil
		case path := <-r.pending:
			if err := r.limiter.Wait(ctx); err != nil {
				return nil
			}
			r.reload(ctx, path)
		}
	}
}

// notify queues a reload. A reload already queued absorbs the change.
func (r *Reloader) notify(path string) {
	select {
	case r.pending <- path:
	default:
	}
}

func (r *Reloader) reload(ctx context.Context, path string) {
	logger.Info("content changed (%s), rebuilding index", path)

	err := r.articles.Invalidate(ctx)
	if err == nil {
		err = r.index.Rebuild(ctx)
	}
	if err != nil {
		logger.Error(err, "reload after change to %s", path)
	}
	if r.rebuilt != nil {
		r.rebuilt(err)
	}
}
