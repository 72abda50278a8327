// Package config defines analyser configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and IPL_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address used by -serve, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// BattingPath and BowlingPath point at the season CSV files.
	BattingPath string `koanf:"batting_path"`
	BowlingPath string `koanf:"bowling_path"`

	// TopWindow is the top-K window each side of an intersection query is cut to.
	TopWindow int `koanf:"top_window" validate:"min=1"`

	// SuggestionDistance is the max edit distance for player name suggestions.
	SuggestionDistance int `koanf:"suggestion_distance" validate:"min=0"`

	// Workers is the number of queries evaluated at once by a full catalogue run.
	Workers int `koanf:"workers" validate:"min=1"`

	// CORSAllowedOrigins lists origins allowed to call the query API.
	// IPL_CORS_ALLOWED_ORIGINS takes a comma separated list.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// ReadTimeoutMS and WriteTimeoutMS bound HTTP request handling.
	ReadTimeoutMS  int `koanf:"read_timeout_ms"`
	WriteTimeoutMS int `koanf:"write_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		TopWindow:          40,
		SuggestionDistance: 3,
		Workers:            4,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		ReadTimeoutMS:      10_000,
		WriteTimeoutMS:     10_000,
	}
}
