package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ymiyake/enquete/internal/flagx"
	"github.com/ymiyake/enquete/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Addr       string         `json:"addr"`
	SecretKey  string         `json:"secret_key"`
	TokenTTL   timex.Duration `json:"token_ttl"`
	SQLitePath string         `json:"sqlite_path"`
	RateLimit  float64        `json:"rate_limit"`
	RateBurst  int            `json:"rate_burst"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. Empty fields leave the Config untouched; read and
// unmarshal errors panic, startup being the only caller.
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

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = time.Duration(jc.TokenTTL.Duration)
	}
	if jc.SQLitePath != "" {
		cfg.SQLitePath = jc.SQLitePath
	}
	if jc.RateLimit != 0 {
		cfg.RateLimit = jc.RateLimit
	}
	if jc.RateBurst != 0 {
		cfg.RateBurst = jc.RateBurst
	}
}
