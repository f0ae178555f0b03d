package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Openticket client.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - DataDir: directory holding the session database and the log file.
//   - LogLevel: debug, info, warn or error.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	DataDir             string
	LogLevel            string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 5 * time.Second
	c.DataDir = ".openticket"
	c.LogLevel = "info"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "session.db")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "client.log")
}
