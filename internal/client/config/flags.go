package config

import (
	"flag"
	"os"
	"time"

	"github.com/ymiyake/enquete/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-k string   web API key
//	-a string   identity endpoint prefix
//	-d string   database root URL
//	-t int      HTTP timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-k", "-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "web API key")
	fs.StringVar(&cfg.AuthEndpoint, "a", cfg.AuthEndpoint, "identity endpoint prefix")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "database root URL")
	httpTimeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
