// Package config loads the settings of the cgt tool from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/etnz/cgt/hmrc"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file configuration.
const (
	EnvCacheDir = "CGT_CACHE_DIR"
	EnvTaxYears = "CGT_TAX_YEARS"
	EnvWorkers  = "CGT_WORKERS"
)

// Config represents the complete tool configuration
type Config struct {
	CacheDir        string            `yaml:"cache_dir"`
	TaxYears        []string          `yaml:"tax_years,omitempty"`
	CurrencySymbols map[string]string `yaml:"currency_symbols"`
	Rates           RatesConfig       `yaml:"rates"`
	Workers         int               `yaml:"workers"`
}

// RatesConfig locates the HMRC monthly exchange rate files.
type RatesConfig struct {
	LegacyURL  string `yaml:"legacy_url"`
	CurrentURL string `yaml:"current_url"`
	Cutover    string `yaml:"cutover"` // YYYY-MM-DD, first month served by CurrentURL
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		CacheDir:        "cache",
		CurrencySymbols: cgt.DefaultSymbols(),
		Rates: RatesConfig{
			LegacyURL:  hmrc.LegacyURL,
			CurrentURL: hmrc.CurrentURL,
			Cutover:    hmrc.Cutover.String(),
		},
		Workers: 1,
	}
}

// LoadFromFile loads the configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Load reads the configuration file at path, if any, then applies the environment
// variables, a .env file in the working directory is loaded first.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		loaded, err := LoadFromFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			cfg = loaded
		}
	}

	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv(EnvTaxYears); v != "" {
		cfg.TaxYears = nil
		for _, y := range strings.Split(v, ",") {
			if y = strings.TrimSpace(y); y != "" {
				cfg.TaxYears = append(cfg.TaxYears, y)
			}
		}
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if _, err := c.Years(); err != nil {
		return err
	}
	if err := c.Symbols().Validate(); err != nil {
		return err
	}
	if _, err := date.Parse(c.Rates.Cutover); err != nil {
		return fmt.Errorf("rates.cutover: %w", err)
	}
	if c.Rates.LegacyURL == "" || c.Rates.CurrentURL == "" {
		return fmt.Errorf("rates.legacy_url and rates.current_url are required")
	}
	return nil
}

// Years returns the parsed tax years, nil meaning every year with transactions.
func (c *Config) Years() ([]date.TaxYear, error) {
	var years []date.TaxYear
	for _, s := range c.TaxYears {
		y, err := date.ParseTaxYear(s)
		if err != nil {
			return nil, fmt.Errorf("tax_years: %w", err)
		}
		years = append(years, y)
	}
	return years, nil
}

// Symbols returns the currency symbol table.
func (c *Config) Symbols() cgt.SymbolTable { return cgt.SymbolTable(c.CurrencySymbols) }

// Provider returns an HMRC rate provider configured from c.
func (c *Config) Provider() (*hmrc.Provider, error) {
	cutover, err := date.Parse(c.Rates.Cutover)
	if err != nil {
		return nil, fmt.Errorf("rates.cutover: %w", err)
	}
	p := hmrc.New(c.CacheDir)
	p.LegacyURL = c.Rates.LegacyURL
	p.CurrentURL = c.Rates.CurrentURL
	p.Cutover = cutover
	return p, nil
}
