// Package config handles configuration for the terminal client, including
// defaults, an optional .env overlay, a JSON config file, and command-line
// flags.
package config

import "time"

// Config holds runtime settings for the survey client.
//
// Fields:
//   - APIKey: web API key passed to the identity endpoints.
//   - AuthEndpoint: identity endpoint prefix; operation names are appended
//     after a colon (":signInWithPassword", ":signUp").
//   - DatabaseURL: root URL of the realtime database.
//   - DefaultEmail / DefaultPassword: optional stored credentials the login
//     prompt can use instead of interactive entry.
//   - HTTPTimeout: per-request timeout for all remote calls.
type Config struct {
	APIKey          string
	AuthEndpoint    string
	DatabaseURL     string
	DefaultEmail    string
	DefaultPassword string
	HTTPTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults. The API key and database
// URL have no usable defaults and must come from the environment, the JSON
// file, or flags.
func (c *Config) LoadDefaults() {
	c.AuthEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts"
	c.HTTPTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (.env), a JSON file (if given via -c/-config), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
