package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyContentDir      = "content.dir"
	keyDefaultLocale   = "locale.default"
	keyLoaderWorkers   = "loader.workers"
	keyLoaderTimeoutMS = "loader.timeout_ms"
	keySearchThreshold = "search.threshold"
	keySearchLimit     = "search.limit"
	keyCacheBackend    = "cache.backend"
	keyCacheDir        = "cache.dir"
	keyWatchEnabled    = "watch.enabled"
	keyWatchIntervalMS = "watch.min_interval_ms"
	keyHTTPAddr        = "mcp.http_addr"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Content: domain.ContentSettings{
			Dir: s.getString(keyContentDir, defaults.Content.Dir),
		},
		DefaultLocale: s.getLocale(defaults.DefaultLocale),
		Loader: domain.LoaderSettings{
			Workers: s.getInt(keyLoaderWorkers, defaults.Loader.Workers),
			Timeout: s.getMillis(keyLoaderTimeoutMS, defaults.Loader.Timeout),
		},
		Search: domain.SearchSettings{
			Threshold: s.getThreshold(defaults.Search.Threshold),
			Limit:     s.getInt(keySearchLimit, defaults.Search.Limit),
		},
		Cache: domain.CacheSettings{
			Backend: s.getCacheBackend(defaults.Cache.Backend),
			Dir:     s.configStore.GetString(keyCacheDir), // empty means next to the config file
		},
		Watch: domain.WatchSettings{
			Enabled:     s.getBool(keyWatchEnabled, defaults.Watch.Enabled),
			MinInterval: s.getMillis(keyWatchIntervalMS, defaults.Watch.MinInterval),
		},
		HTTPAddr: s.getString(keyHTTPAddr, defaults.HTTPAddr),
	}

	return settings, nil
}

// Save persists every setting in one write.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	err := s.configStore.Update(map[string]any{
		keyContentDir:      settings.Content.Dir,
		keyDefaultLocale:   settings.DefaultLocale.String(),
		keyLoaderWorkers:   settings.Loader.Workers,
		keyLoaderTimeoutMS: settings.Loader.Timeout.Milliseconds(),
		keySearchThreshold: settings.Search.Threshold,
		keySearchLimit:     settings.Search.Limit,
		keyCacheBackend:    settings.Cache.Backend.String(),
		keyCacheDir:        settings.Cache.Dir,
		keyWatchEnabled:    settings.Watch.Enabled,
		keyWatchIntervalMS: settings.Watch.MinInterval.Milliseconds(),
		keyHTTPAddr:        settings.HTTPAddr,
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ConfigPath reports where settings are stored.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// SetContentDir updates the content root.
func (s *SettingsService) SetContentDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: content dir must not be empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Content.Dir = dir
	return s.Save(settings)
}

// SetCacheBackend updates the render cache backend.
func (s *SettingsService) SetCacheBackend(backend domain.CacheBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: invalid cache backend: %s", domain.ErrInvalidInput, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Cache.Backend = backend
	return s.Save(settings)
}

// Validate checks that the stored settings are usable as written.
// Unlike Get, it reports invalid values instead of replacing them.
func (s *SettingsService) Validate() error {
	if v := s.configStore.GetString(keyDefaultLocale); v != "" {
		if _, err := domain.ParseLocale(v); err != nil {
			return fmt.Errorf("%s: %w", keyDefaultLocale, err)
		}
	}

	if v := s.configStore.GetString(keyCacheBackend); v != "" && !domain.CacheBackend(v).IsValid() {
		return fmt.Errorf("%w: %s: unknown backend %q", domain.ErrInvalidInput, keyCacheBackend, v)
	}

	if _, ok := s.configStore.Get(keySearchThreshold); ok {
		th := s.configStore.GetFloat(keySearchThreshold)
		if th <= 0 || th > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %g", domain.ErrInvalidInput, keySearchThreshold, th)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Loader.Workers < 1 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyLoaderWorkers)
	}
	if settings.Search.Limit < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keySearchLimit)
	}
	if settings.Content.Dir == "" {
		return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, keyContentDir)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	ms := s.configStore.GetInt(key)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getThreshold(defaultVal float64) float64 {
	val := s.configStore.GetFloat(keySearchThreshold)
	if val <= 0 || val > 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getLocale(defaultVal domain.Locale) domain.Locale {
	val := s.configStore.GetString(keyDefaultLocale)
	if val == "" {
		return defaultVal
	}
	l, err := domain.ParseLocale(val)
	if err != nil {
		return defaultVal
	}
	return l
}

func (s *SettingsService) getCacheBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	val := s.configStore.GetString(keyCacheBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.CacheBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
