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
//	-a string   bind address
//	-s string   token signing secret
//	-ttl int    token lifetime in minutes
//	-db string  sqlite file path (empty keeps the tree in memory)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-ttl", "-db"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	tokenTTL := fs.Int("ttl", int(cfg.TokenTTL.Minutes()), "token lifetime (in minutes)")
	fs.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "sqlite file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenTTL = time.Duration(*tokenTTL) * time.Minute
}
