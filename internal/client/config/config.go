package config

import "time"

// Config holds runtime settings for the FeedHub client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - RequestTimeout: client-side cap on any single request.
//   - RevalidateInterval: how often an authenticated session is re-checked.
//
// Units: durations are time.Duration values (e.g., 30*time.Second).
type Config struct {
	APIBaseURL         string
	RequestTimeout     time.Duration
	RevalidateInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.RevalidateInterval = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
