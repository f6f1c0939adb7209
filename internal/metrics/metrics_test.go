package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	m := New()
	require.NotNil(t, m.Registry())

	m.ArticleLoaded()
	m.ArticleLoaded()
	m.RenderCache(true)
	m.RenderCache(false)
	m.Compared(true)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ArticlesLoadedTotal), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RenderCacheHitsTotal), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RenderCacheMissTotal), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AlignmentMismatches), 1e-9)
}

func TestNew_Independent(t *testing.T) {
	// Private registries allow several instances in one process.
	a, b := New(), New()
	a.ArticleFailed()
	assert.InDelta(t, 0, testutil.ToFloat64(b.ArticleFailuresTotal), 1e-9)
}

func TestIndexBuilt(t *testing.T) {
	m := New()
	m.IndexBuilt(time.Second, 12, nil)
	m.IndexBuilt(0, 0, errors.New("boom"))

	assert.InDelta(t, 12, testutil.ToFloat64(m.IndexDocuments), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("ok")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("error")), 1e-9)
}

func TestHandler(t *testing.T) {
	m := New()
	m.Searched(time.Millisecond, "hit", 3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "parallax_search_queries_total")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ArticleLoaded()
		m.ArticleFailed()
		m.LocaleWarning("x")
		m.Rendered(time.Millisecond)
		m.RenderCache(true)
		m.IndexBuilt(time.Second, 1, nil)
		m.Searched(time.Second, "hit", 1)
		m.Compared(false)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
