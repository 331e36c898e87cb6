package config

import (
	"flag"
	"os"
	"time"

	"github.com/spineguard/spinectl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-p int      status poll interval in seconds (default from Config)
//	-d string   path to the local credentials database
//	-m string   metrics listen address (empty disables)
//	-v          verbose (debug) logging
//
// Args are filtered through flagx.FilterArgs so this parser does not
// interfere with flags owned by other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-d", "-m", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend API")
	pollInterval := fs.Int("p", int(cfg.PollInterval.Seconds()), "status poll interval (in seconds)")
	fs.StringVar(&cfg.CredentialsDBPath, "d", cfg.CredentialsDBPath, "path to the credentials database")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
