// Package metrics defines the Prometheus collectors used by the loader,
// the search index and the comparison service, and exposes an HTTP handler
// for scraping.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ArticlesLoadedTotal  prometheus.Counter
	ArticleFailuresTotal prometheus.Counter
	LocaleWarningsTotal  *prometheus.CounterVec
	RenderDuration       prometheus.Histogram
	RenderCacheHitsTotal prometheus.Counter
	RenderCacheMissTotal prometheus.Counter
	IndexBuildsTotal     *prometheus.CounterVec
	IndexBuildDuration   prometheus.Histogram
	IndexDocuments       prometheus.Gauge
	SearchQueriesTotal   *prometheus.CounterVec
	SearchLatency        prometheus.Histogram
	SearchResultsCount   prometheus.Histogram
	ComparisonsTotal     prometheus.Counter
	AlignmentMismatches  prometheus.Counter
}

// New creates all collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ArticlesLoadedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parallax_articles_loaded_total",
				Help: "Total number of articles loaded.",
			},
		),
		ArticleFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parallax_article_failures_total",
				Help: "Total number of articles that failed to load in a batch.",
			},
		),
		LocaleWarningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parallax_locale_warnings_total",
				Help: "Degraded locales by warning kind.",
			},
			[]string{"kind"},
		),
		RenderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parallax_render_duration_seconds",
				Help:    "Time to render one locale.",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),
		RenderCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parallax_render_cache_hits_total",
				Help: "Total number of render cache hits.",
			},
		),
		RenderCacheMissTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parallax_render_cache_misses_total",
				Help: "Total number of render cache misses.",
			},
		),
		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parallax_index_builds_total",
				Help: "Total index builds by status.",
			},
			[]string{"status"},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parallax_index_build_duration_seconds",
				Help:    "Time to load the corpus and build the index.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		IndexDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "parallax_index_documents",
				Help: "Number of articles in the current index snapshot.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parallax_search_queries_total",
				Help: "Total search queries by result type (browse, hit, zero_result, error).",
			},
			[]string{"result_type"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parallax_search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parallax_search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		ComparisonsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parallax_comparisons_total",
				Help: "Total side-by-side comparisons produced.",
			},
		),
		AlignmentMismatches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parallax_alignment_mismatches_total",
				Help: "Comparisons where the right locale had markers missing on the left.",
			},
		),
	}

	m.registry.MustRegister(
		m.ArticlesLoadedTotal,
		m.ArticleFailuresTotal,
		m.LocaleWarningsTotal,
		m.RenderDuration,
		m.RenderCacheHitsTotal,
		m.RenderCacheMissTotal,
		m.IndexBuildsTotal,
		m.IndexBuildDuration,
		m.IndexDocuments,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.ComparisonsTotal,
		m.AlignmentMismatches,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ArticleLoaded records a successful article load.
func (m *Metrics) ArticleLoaded() {
	if m != nil {
		m.ArticlesLoadedTotal.Inc()
	}
}

// ArticleFailed records an article that failed in a batch.
func (m *Metrics) ArticleFailed() {
	if m != nil {
		m.ArticleFailuresTotal.Inc()
	}
}

// LocaleWarning records a degraded locale.
func (m *Metrics) LocaleWarning(kind string) {
	if m != nil {
		m.LocaleWarningsTotal.WithLabelValues(kind).Inc()
	}
}

// Rendered records one locale render.
func (m *Metrics) Rendered(d time.Duration) {
	if m != nil {
		m.RenderDuration.Observe(d.Seconds())
	}
}

// RenderCache records a render cache lookup.
func (m *Metrics) RenderCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.RenderCacheHitsTotal.Inc()
	} else {
		m.RenderCacheMissTotal.Inc()
	}
}

// IndexBuilt records an index build attempt.
func (m *Metrics) IndexBuilt(d time.Duration, docs int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.IndexBuildsTotal.WithLabelValues("error").Inc()
		return
	}
	m.IndexBuildsTotal.WithLabelValues("ok").Inc()
	m.IndexBuildDuration.Observe(d.Seconds())
	m.IndexDocuments.Set(float64(docs))
}

// Searched records a search query.
func (m *Metrics) Searched(d time.Duration, resultType string, results int) {
	if m == nil {
		return
	}
	m.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	m.SearchLatency.Observe(d.Seconds())
	m.SearchResultsCount.Observe(float64(results))
}

// Compared records a comparison and whether it had right-only markers.
func (m *Metrics) Compared(mismatch bool) {
	if m == nil {
		return
	}
	m.ComparisonsTotal.Inc()
	if mismatch {
		m.AlignmentMismatches.Inc()
	}
}
