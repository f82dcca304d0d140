package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Len(t, cfg.Calculators, 3)
	assert.InDelta(t, 1.0, cfg.Weights.FRI.Sum(), 0.001)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CHAT_TIMEOUT_MS", "2500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.TrustedProxies)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.Chat.Timeout())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadYAMLOverlay(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfig(t, `
scoring:
  thresholds:
    strong: 4.2
    stable: 3.5
    at_risk: 2.5
calculators:
  vat:
    label: VAT
    rate: 0.05
  excise:
    label: Excise
    rate: 0.5
`))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4.2, cfg.Thresholds.Strong)
	assert.Equal(t, 0.05, cfg.Calculators["vat"].Rate)
	assert.Equal(t, 0.5, cfg.Calculators["excise"].Rate)
	assert.Contains(t, cfg.Calculators, "zakat")
}

func TestLoadRejectsWeightsNotSummingToOne(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfig(t, `
scoring:
  weights:
    fri:
      - {category: A, weight: 0.5}
      - {category: B, weight: 0.4}
    dri:
      - {category: D, weight: 1.0}
    fei:
      - {category: E, weight: 1.0}
`))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fri")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadTablesIgnoresServiceSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.Equal(t, 0.15, tables.Calculators["vat"].Rate)

	tables, err = LoadTables(writeConfig(t, `
calculators:
  vat:
    label: VAT
    rate: 0.05
`))
	require.NoError(t, err)
	assert.Equal(t, 0.05, tables.Calculators["vat"].Rate)
	assert.Contains(t, tables.Calculators, "withholding")
}
