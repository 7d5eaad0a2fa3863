// Package config handles configuration for the emulator, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the emulator.
//
// Fields:
//   - Addr: bind address of the HTTP endpoint.
//   - SecretKey: HMAC secret for signing identity tokens (HS256).
//   - TokenTTL: identity token lifetime.
//   - SQLitePath: when set, the tree persists to this sqlite file;
//     empty keeps everything in memory.
//   - RateLimit / RateBurst: per-client request rate bound; a zero
//     RateLimit disables limiting.
type Config struct {
	Addr       string
	SecretKey  string
	TokenTTL   time.Duration
	SQLitePath string
	RateLimit  float64
	RateBurst  int
}

// LoadDefaults populates Config with development defaults. The secret is
// fine for a local emulator and must be overridden anywhere else.
func (c *Config) LoadDefaults() {
	c.Addr = ":9040"
	c.SecretKey = "emulator-secret"
	c.TokenTTL = time.Hour
	c.RateLimit = 50
	c.RateBurst = 100
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
