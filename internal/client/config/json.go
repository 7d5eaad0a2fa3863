package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ymiyake/enquete/internal/flagx"
	"github.com/ymiyake/enquete/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	APIKey          string         `json:"api_key"`
	AuthEndpoint    string         `json:"auth_endpoint"`
	DatabaseURL     string         `json:"database_url"`
	DefaultEmail    string         `json:"email"`
	DefaultPassword string         `json:"password"`
	HTTPTimeout     timex.Duration `json:"http_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. When no file is given the function returns without
// touching cfg. Read or unmarshal errors panic; startup is the only caller.
// Empty JSON fields leave the corresponding Config fields unchanged.
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

	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.AuthEndpoint != "" {
		cfg.AuthEndpoint = jc.AuthEndpoint
	}
	if jc.DatabaseURL != "" {
		cfg.DatabaseURL = jc.DatabaseURL
	}
	if jc.DefaultEmail != "" {
		cfg.DefaultEmail = jc.DefaultEmail
	}
	if jc.DefaultPassword != "" {
		cfg.DefaultPassword = jc.DefaultPassword
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
}
