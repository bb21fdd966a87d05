package config

import "time"

// Config holds runtime settings for the MindCare CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, e.g. http://localhost:8080/api.
//   - RequestTimeout: fixed timeout applied to every API request.
//   - StoragePath: SQLite file holding the persisted session.
//   - StorageSecret: optional; when set, stored values are encrypted.
//   - LogLevel: debug, info, warn or error.
//   - LogBackend: "slog" (default) or "zap".
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StoragePath    string
	StorageSecret  string
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 30 * time.Second
	c.StoragePath = "mindcare.db"
	c.StorageSecret = ""
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
