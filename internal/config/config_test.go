package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 2, cfg.ExpansionWeeksAhead)
	assert.Equal(t, "0 3 * * *", cfg.ExpansionCron)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_CURRENCY", "EUR")
	t.Setenv("EXPANSION_WEEKS_AHEAD", "4")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("EXPANSION_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, 4, cfg.ExpansionWeeksAhead)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Empty(t, cfg.ExpansionCron)
}

func TestLoad_YAMLFileBelowEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
default_currency: GBP
expansion_weeks_ahead: 6
log_format: text
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")
	t.Setenv("DEFAULT_CURRENCY", "")
	t.Setenv("EXPANSION_WEEKS_AHEAD", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Port)
	assert.Equal(t, "GBP", cfg.DefaultCurrency)
	assert.Equal(t, 6, cfg.ExpansionWeeksAhead)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("EXPANSION_WEEKS_AHEAD", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXPANSION_WEEKS_AHEAD")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
