package driven

// ConfigStore holds flat, dot-separated settings keys ("search.threshold").
// Typed getters return the zero value when a key is missing or holds a value
// of another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int

	// GetFloat widens integers, so "threshold = 1" reads as 1.0.
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set stores one value and persists it.
	Set(key string, value any) error

	// Update stores every value and persists once. Nothing is written if
	// persisting fails.
	Update(values map[string]any) error

	// Path names where settings are persisted, for display.
	Path() string
}
