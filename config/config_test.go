package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/cgt/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cgt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "cache", cfg.CacheDir)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "USD", cfg.Symbols()["$"])

	p, err := cfg.Provider()
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01", p.Cutover.String())
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, `
cache_dir: /tmp/rates
tax_years: ["2021-22", "2022/23"]
currency_symbols:
  "$": USD
  "¥": JPY
rates:
  current_url: http://localhost/current
workers: 4
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/tmp/rates", cfg.CacheDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "JPY", cfg.Symbols()["¥"])
	assert.Equal(t, "http://localhost/current", cfg.Rates.CurrentURL)
	assert.NotEmpty(t, cfg.Rates.LegacyURL, "unset keys keep their default")

	years, err := cfg.Years()
	require.NoError(t, err)
	assert.Equal(t, []date.TaxYear{2021, 2022}, years)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file
	t.Setenv(EnvCacheDir, "env-cache")
	t.Setenv(EnvTaxYears, "2020-21, 2021-22")
	t.Setenv(EnvWorkers, "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-cache", cfg.CacheDir)
	assert.Equal(t, []string{"2020-21", "2021-22"}, cfg.TaxYears)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CGT_CACHE_DIR=dotenv-cache\n"), 0644))
	t.Cleanup(func() { os.Unsetenv(EnvCacheDir) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-cache", cfg.CacheDir)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "no cache dir", modify: func(c *Config) { c.CacheDir = "" }},
		{name: "no worker", modify: func(c *Config) { c.Workers = 0 }},
		{name: "bad tax year", modify: func(c *Config) { c.TaxYears = []string{"2021-23"} }},
		{name: "unknown iso code", modify: func(c *Config) { c.CurrencySymbols = map[string]string{"$": "XYZ"} }},
		{name: "long symbol", modify: func(c *Config) { c.CurrencySymbols = map[string]string{"US$": "USD"} }},
		{name: "bad cutover", modify: func(c *Config) { c.Rates.Cutover = "January" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(writeFile(t, "workers: 0\n"))
	assert.ErrorContains(t, err, "workers")

	_, err = Load(writeFile(t, "workers: [\n"))
	assert.Error(t, err)
}
