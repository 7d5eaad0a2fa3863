package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading
// a local .env file first when one exists. Unset variables leave the
// corresponding fields untouched.
//
// Recognized variables:
//
//	ENQUETE_API_KEY, ENQUETE_AUTH_ENDPOINT, ENQUETE_DATABASE_URL,
//	ENQUETE_EMAIL, ENQUETE_PASSWORD
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	overlay(&cfg.APIKey, "ENQUETE_API_KEY")
	overlay(&cfg.AuthEndpoint, "ENQUETE_AUTH_ENDPOINT")
	overlay(&cfg.DatabaseURL, "ENQUETE_DATABASE_URL")
	overlay(&cfg.DefaultEmail, "ENQUETE_EMAIL")
	overlay(&cfg.DefaultPassword, "ENQUETE_PASSWORD")
}

func overlay(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
