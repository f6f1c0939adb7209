// Command parallax reads, compares and searches multilingual articles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/parallax/internal/adapters/driven/config/file"
	"github.com/custodia-labs/parallax/internal/adapters/driven/content/filesystem"
	"github.com/custodia-labs/parallax/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/parallax/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/parallax/internal/adapters/driven/watch"
	"github.com/custodia-labs/parallax/internal/adapters/driving/cli"
	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
	"github.com/custodia-labs/parallax/internal/core/services"
	"github.com/custodia-labs/parallax/internal/logger"
	"github.com/custodia-labs/parallax/internal/metrics"
	"github.com/custodia-labs/parallax/internal/render"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code = 1
	}
	stop()
	os.Exit(code)
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	m := metrics.New()
	svcs := cli.Services{
		Settings: settingsService,
		Metrics:  m.Handler(),
	}

	closeAll := wireContent(settings, m, &svcs)
	defer closeAll()

	cli.SetVersion(version)
	cli.SetServices(svcs)
	return cli.Execute(ctx)
}

// wireContent builds the content services. A missing content directory
// leaves them unset so settings commands still work.
func wireContent(settings *domain.AppSettings, m *metrics.Metrics, svcs *cli.Services) func() {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("shutdown: %v", err)
			}
		}
	}

	source, err := filesystem.NewSource(settings.Content.Dir)
	if err != nil {
		logger.Warn("content unavailable: %v (set it with 'parallax settings content-dir <dir>')", err)
		return closeAll
	}

	renderer := render.NewRenderer()

	articles := services.NewArticleService(source, renderer, settings.Loader)
	articles.SetMetrics(m)
	cache, closeCache := openRenderCache(settings.Cache)
	if cache != nil {
		articles.SetRenderCache(cache)
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	compare := services.NewCompareService(source, renderer)
	compare.SetMetrics(m)

	search := services.NewSearchService(articles, settings.Search)
	search.SetMetrics(m)

	svcs.Articles = articles
	svcs.Compare = compare
	svcs.Search = search
	svcs.Catalogue = search

	if settings.Watch.Enabled {
		watcher := watch.New(source.Root())
		closers = append(closers, watcher.Close)

		reloader := services.NewReloader(watcher, articles, search, settings.Watch.MinInterval)
		reloader.OnReload(func(err error) {
			if err == nil {
				logger.Info("index rebuilt")
			}
		})
		svcs.Reloader = reloader
	}

	return closeAll
}

// openRenderCache opens the configured cache backend. A SQLite cache that
// cannot be opened degrades to memory.
func openRenderCache(cfg domain.CacheSettings) (driven.RenderCache, func() error) {
	switch cfg.Backend {
	case domain.CacheNone:
		return nil, nil
	case domain.CacheSQLite:
		store, err := sqlite.NewStore(cfg.Dir)
		if err != nil {
			logger.Warn("sqlite render cache unavailable, using memory: %v", err)
			return memory.NewRenderCache(), nil
		}
		logger.Debug("render cache: %s", store.Path())
		return store.RenderCache(), store.Close
	default:
		return memory.NewRenderCache(), nil
	}
}
