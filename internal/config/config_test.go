package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CUSTOMERDESK_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.Analytics.BaseURL)
	require.Equal(t, "/customer-analytics", cfg.Analytics.Path)
	require.Equal(t, time.Duration(0), cfg.Analytics.Timeout)
	require.Equal(t, "Rs", cfg.UI.CurrencySymbol)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Metrics.Address)
	require.Equal(t, "http://localhost:8000/customer-analytics", cfg.Analytics.Endpoint())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[analytics]
base_url = "http://analytics.internal:9000/"
path = "v2/customer-analytics"
timeout = "15s"

[ui]
currency_symbol = "PKR"

[keys]
run-analytics = ["ctrl+g"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("CUSTOMERDESK_CONFIG", path)
	t.Setenv("CUSTOMERDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://analytics.internal:9000", cfg.Analytics.BaseURL)
	require.Equal(t, "/v2/customer-analytics", cfg.Analytics.Path)
	require.Equal(t, 15*time.Second, cfg.Analytics.Timeout)
	require.Equal(t, "PKR", cfg.UI.CurrencySymbol)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, []string{"ctrl+g"}, cfg.Keys["run-analytics"])
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("CUSTOMERDESK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.CurrencySymbol = "$"
	cfg.Analytics.Timeout = 3 * time.Second
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, "$", again.UI.CurrencySymbol)
	require.Equal(t, 3*time.Second, again.Analytics.Timeout)
}

func TestLoadRejectsMalformedDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CUSTOMERDESK_CONFIG", "")
	cfgDir := filepath.Join(dir, ".config", "customerdesk")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("[analytics\nbase_url = "), 0o600))

	_, err := Load()
	require.ErrorContains(t, err, "read config")
}

func TestLoadToleratesMissingExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CUSTOMERDESK_CONFIG", filepath.Join(dir, "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Rs", cfg.UI.CurrencySymbol)
}

func TestWriteDefaultOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CUSTOMERDESK_CONFIG", "")
	want := filepath.Join(dir, ".config", "customerdesk", "config.toml")
	require.Equal(t, want, Path())

	written, err := WriteDefault()
	require.NoError(t, err)
	require.True(t, written)
	require.FileExists(t, want)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/customer-analytics", cfg.Analytics.Endpoint())
	require.Equal(t, "Rs", cfg.UI.CurrencySymbol)

	cfg.UI.CurrencySymbol = "$"
	require.NoError(t, Save(cfg))
	written, err = WriteDefault()
	require.NoError(t, err)
	require.False(t, written, "an existing file is kept")

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, "$", again.UI.CurrencySymbol)
}
