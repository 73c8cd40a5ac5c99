package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/biteboxd/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backend base URL
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//	-t int      request timeout in seconds, 0 for none
//
// Only these flags are taken from args, so other parsers can share them.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("biteboxd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
