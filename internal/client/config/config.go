package config

import "time"

// Config holds runtime settings for the AquaPure admin CLI.
//
// Fields:
//   - ServerURL: base URL of the back-office API.
//   - RequestTimeout: fixed per-request HTTP timeout.
//   - StatePath: path to the local sqlite state database.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	StatePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.StatePath = "admcli.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
