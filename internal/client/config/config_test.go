package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"spinectl"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:5000/api", cfg.ServerBaseURL)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, "spinectl.db", cfg.CredentialsDBPath)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigFlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-a", "http://example.com/api", "-p", "5", "-d", "/tmp/creds.db", "-m", ":9100", "-v")

	cfg := LoadConfig()

	assert.Equal(t, "http://example.com/api", cfg.ServerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "/tmp/creds.db", cfg.CredentialsDBPath)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.True(t, cfg.Verbose)
}

func TestParseJsonPartialFileKeepsDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"server_base_url":"http://json.example/api","poll_interval":"3s"}`), 0o600))
	withArgs(t, "-c", file)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://json.example/api", cfg.ServerBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	// fields absent from the file keep their defaults
	assert.Equal(t, "spinectl.db", cfg.CredentialsDBPath)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestParseJsonWithoutFlagIsNoop(t *testing.T) {
	withArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://localhost:5000/api", cfg.ServerBaseURL)
}

func TestFlagsTakePrecedenceOverJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"server_base_url":"http://json.example/api"}`), 0o600))
	withArgs(t, "-config", file, "-a", "http://flag.example/api")

	cfg := LoadConfig()

	assert.Equal(t, "http://flag.example/api", cfg.ServerBaseURL)
}
