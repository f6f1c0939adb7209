package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"content.dir":           "/srv/blog",
		"locale.default":        "zh_tw",
		"loader.workers":        3,
		"loader.timeout_ms":     int64(1500),
		"search.threshold":      0.25,
		"search.limit":          5,
		"cache.backend":         "sqlite",
		"cache.dir":             "/var/cache/parallax",
		"watch.enabled":         false,
		"watch.min_interval_ms": 500,
		"mcp.http_addr":         ":9000",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/blog", settings.Content.Dir)
	assert.Equal(t, domain.LocaleZhTW, settings.DefaultLocale)
	assert.Equal(t, 3, settings.Loader.Workers)
	assert.Equal(t, 1500*time.Millisecond, settings.Loader.Timeout)
	assert.InDelta(t, 0.25, settings.Search.Threshold, 1e-9)
	assert.Equal(t, 5, settings.Search.Limit)
	assert.Equal(t, domain.CacheSQLite, settings.Cache.Backend)
	assert.Equal(t, "/var/cache/parallax", settings.Cache.Dir)
	assert.False(t, settings.Watch.Enabled)
	assert.Equal(t, 500*time.Millisecond, settings.Watch.MinInterval)
	assert.Equal(t, ":9000", settings.HTTPAddr)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"locale.default":   "fr",
		"cache.backend":    "redis",
		"search.threshold": 4.0,
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.DefaultLocale, settings.DefaultLocale)
	assert.Equal(t, defaults.Cache.Backend, settings.Cache.Backend)
	assert.InDelta(t, defaults.Search.Threshold, settings.Search.Threshold, 1e-9)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Content.Dir = "/data"
	settings.DefaultLocale = domain.LocaleEN
	settings.Loader.Timeout = 3 * time.Second
	settings.Search.Threshold = 0.3

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "en", store.GetString("locale.default"))
	assert.Equal(t, 3000, store.GetInt("loader.timeout_ms"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
	assert.Equal(t, 1, store.Commits(), "one write for the whole struct")
}

func TestSettingsService_SaveError(t *testing.T) {
	store := memory.NewConfigStore()
	store.FailWith(errors.New("read-only file system"))
	service := NewSettingsService(store)

	defaults := domain.DefaultAppSettings()
	err := service.Save(&defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")

	assert.Error(t, service.SetContentDir("/data"))
}

func TestSettingsService_ConfigPath(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, ":memory:", service.ConfigPath())
}

func TestSettingsService_SetContentDir(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetContentDir("/new/content"))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/new/content", settings.Content.Dir)

	err = service.SetContentDir("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetCacheBackend(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetCacheBackend(domain.CacheNone))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.CacheNone, settings.Cache.Backend)

	err = service.SetCacheBackend("bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr error
	}{
		{name: "defaults", values: nil},
		{name: "bad locale", values: map[string]any{"locale.default": "de"}, wantErr: domain.ErrUnsupportedLocale},
		{name: "bad backend", values: map[string]any{"cache.backend": "redis"}, wantErr: domain.ErrInvalidInput},
		{name: "threshold too high", values: map[string]any{"search.threshold": 1.5}, wantErr: domain.ErrInvalidInput},
		{name: "threshold zero", values: map[string]any{"search.threshold": 0.0}, wantErr: domain.ErrInvalidInput},
		{name: "negative workers", values: map[string]any{"loader.workers": -2}, wantErr: domain.ErrInvalidInput},
		{name: "negative limit", values: map[string]any{"search.limit": -1}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(tt.values))
			err := service.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
