// Package config loads runtime settings for the spinectl client.
// Sources are layered: defaults, then an optional JSON file, then
// command-line flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerBaseURL: base address of the backend API, including the
//     path prefix (e.g. http://localhost:5000/api).
//   - PollInterval: cadence of the monitoring status poll loop.
//   - CredentialsDBPath: SQLite file holding the durable credential
//     projection.
//   - MetricsAddr: listen address for the Prometheus endpoint; empty
//     disables it.
//   - Verbose: lowers the log level to debug.
type Config struct {
	ServerBaseURL     string
	PollInterval      time.Duration
	CredentialsDBPath string
	MetricsAddr       string
	Verbose           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.PollInterval = 1 * time.Second
	c.CredentialsDBPath = "spinectl.db"
	c.MetricsAddr = ""
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a -c/-config file is given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
