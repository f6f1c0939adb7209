package driving

import "github.com/custodia-labs/parallax/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetContentDir updates the content root.
	SetContentDir(dir string) error

	// SetCacheBackend updates the render cache backend.
	SetCacheBackend(backend domain.CacheBackend) error

	// Validate checks that the current settings are usable.
	Validate() error

	// ConfigPath reports where settings are stored.
	ConfigPath() string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
