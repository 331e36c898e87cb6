package config

import (
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/spineguard/spinectl/internal/flagx"
	"github.com/spineguard/spinectl/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so intervals can be given either as strings like
// "1s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	PollInterval      timex.Duration `json:"poll_interval"`
	CredentialsDBPath string         `json:"credentials_db"`
	MetricsAddr       string         `json:"metrics_addr"`
	Verbose           bool           `json:"verbose"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file path means no JSON is loaded. Only fields
// present in the file override; zero values are skipped so defaults
// survive a partial file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.CredentialsDBPath != "" {
		cfg.CredentialsDBPath = jc.CredentialsDBPath
	}
	if jc.MetricsAddr != "" {
		cfg.MetricsAddr = jc.MetricsAddr
	}
	if jc.Verbose {
		cfg.Verbose = true
	}
}
