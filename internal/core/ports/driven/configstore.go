package driven

// ConfigStore holds settings under dotted keys such as "segment.length"
// or "rules.remove-urls.enabled". Typed getters return the zero value for
// a missing key or one of the wrong type, so callers apply their own
// defaults.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	// GetInt also accepts numeric strings written by "settings set".
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set persists immediately. On error the previous value stays.
	Set(key string, value any) error
	Save() error
	// Load discards in-memory values and rereads storage.
	Load() error
	// Path names the backing file, or ":memory:".
	Path() string
}
