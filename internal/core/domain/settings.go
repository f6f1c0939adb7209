package domain

import "time"

const unknownDescription = "Unknown"

// CacheBackend selects where rendered locales are cached between loads.
type CacheBackend string

// Available cache backends.
const (
	// CacheMemory keeps renders in process memory.
	CacheMemory CacheBackend = "memory"

	// CacheSQLite persists renders in a SQLite database.
	CacheSQLite CacheBackend = "sqlite"

	// CacheNone disables render caching.
	CacheNone CacheBackend = "none"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheMemory, CacheSQLite, CacheNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CacheBackend) Description() string {
	switch b {
	case CacheMemory:
		return "Memory (per process)"
	case CacheSQLite:
		return "SQLite (persistent)"
	case CacheNone:
		return "None (render every load)"
	default:
		return unknownDescription
	}
}

// ContentSettings locates the content tree.
type ContentSettings struct {
	// Dir is the root holding posts/ and authors/.
	Dir string
}

// LoaderSettings bounds corpus loading.
type LoaderSettings struct {
	// Workers is the number of articles loaded concurrently.
	Workers int

	// Timeout bounds the load of a single article.
	Timeout time.Duration
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Threshold is the highest per-field fuzzy score accepted as a match.
	Threshold float64

	// Limit is the default number of results returned.
	Limit int
}

// CacheSettings configures the render cache.
type CacheSettings struct {
	Backend CacheBackend

	// Dir holds the SQLite database when Backend is CacheSQLite.
	Dir string
}

// WatchSettings configures reloading on content changes.
type WatchSettings struct {
	Enabled bool

	// MinInterval is the minimum time between two rebuilds.
	MinInterval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Content       ContentSettings
	DefaultLocale Locale
	Loader        LoaderSettings
	Search        SearchSettings
	Cache         CacheSettings
	Watch         WatchSettings

	// HTTPAddr is the listen address of the MCP HTTP transport.
	HTTPAddr string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Content:       ContentSettings{Dir: "content"},
		DefaultLocale: DefaultLocale,
		Loader: LoaderSettings{
			Workers: 8,
			Timeout: 10 * time.Second,
		},
		Search: SearchSettings{
			Threshold: 0.4,
			Limit:     20,
		},
		Cache: CacheSettings{
			Backend: CacheMemory,
		},
		Watch: WatchSettings{
			Enabled:     true,
			MinInterval: 2 * time.Second,
		},
		HTTPAddr: "127.0.0.1:8090",
	}
}

// AllCacheBackends returns all available cache backends.
func AllCacheBackends() []CacheBackend {
	return []CacheBackend{CacheMemory, CacheSQLite, CacheNone}
}
