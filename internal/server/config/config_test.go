package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"devserver"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":9040", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.SQLitePath)
	assert.Equal(t, float64(50), cfg.RateLimit)
}

func TestParseJson_Overlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	data := `{"addr":":7000","secret_key":"s3","token_ttl":"30m","sqlite_path":"tree.db"}`
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	resetArgs(t, "-c", file)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "s3", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "tree.db", cfg.SQLitePath)
	// untouched by absent fields
	assert.Equal(t, float64(50), cfg.RateLimit)
}

func TestParseFlags_Overlay(t *testing.T) {
	resetArgs(t, "-a", ":7001", "-ttl", "5", "-db", "x.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7001", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "x.db", cfg.SQLitePath)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"addr":":7000"}`), 0o600))

	resetArgs(t, "-c", file, "-a", ":7002")

	cfg := LoadConfig()
	assert.Equal(t, ":7002", cfg.Addr)
}
