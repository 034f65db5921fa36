// Package hmrc provides the monthly exchange rates published by HMRC.
//
// HMRC publishes, for each month, one XML table of the rates to use to convert a
// foreign currency into pounds. Tables never change once published: the Provider
// downloads each month once, keeps the raw file in a cache directory and reuses it
// across runs.
package hmrc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/etnz/cgt/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// LegacyURL serves the tables published before the cutover.
	LegacyURL = "http://www.hmrc.gov.uk/softwaredevelopers/rates"
	// CurrentURL serves the tables published from the cutover.
	CurrentURL = "https://www.trade-tariff.service.gov.uk/api/v2/exchange_rates/files"
)

// Cutover is the first month published under the current file naming.
var Cutover = date.New(2021, time.January, 1)

// Month identifies one rate table.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d date.Date) Month { return Month{Year: d.Year(), Month: d.Month()} }

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, m.Month) }

func (m Month) first() date.Date { return date.New(m.Year, m.Month, 1) }

// Table maps an ISO currency code to the number of units of that currency per pound.
type Table map[string]decimal.Decimal

// Provider resolves GBP conversion rates from HMRC monthly tables.
// It is safe for concurrent use.
type Provider struct {
	CacheDir   string
	LegacyURL  string
	CurrentURL string
	Cutover    date.Date
	Client     *http.Client
	Logger     zerolog.Logger

	mu     sync.Mutex
	tables map[Month]Table
}

// New returns a Provider caching tables in cacheDir, with the default endpoints.
func New(cacheDir string) *Provider {
	return &Provider{
		CacheDir:   cacheDir,
		LegacyURL:  LegacyURL,
		CurrentURL: CurrentURL,
		Cutover:    Cutover,
		Client:     http.DefaultClient,
		Logger:     zerolog.Nop(),
	}
}

// Rate returns how many units of currency buy one pound in the month of on.
func (p *Provider) Rate(currency string, on date.Date) (decimal.Decimal, error) {
	if currency == "GBP" {
		return decimal.NewFromInt(1), nil
	}
	m := MonthOf(on)
	table, err := p.Table(m)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := table[currency]
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Currency: currency, Month: m}
	}
	return rate, nil
}

// Table returns the rate table of m, from memory, from the cache directory, or downloaded.
func (p *Provider) Table(m Month) (Table, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.tables[m]; ok {
		return t, nil
	}

	content, err := p.cached(m)
	if err != nil {
		return nil, err
	}
	t, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("rates for %s: %w", m, err)
	}
	if p.tables == nil {
		p.tables = make(map[Month]Table)
	}
	p.tables[m] = t
	return t, nil
}

// Filename returns the name of the file holding the table of m.
func (p *Provider) Filename(m Month) string {
	if m.first().Before(p.Cutover) {
		return fmt.Sprintf("exrates-monthly-%02d%02d.XML", int(m.Month), m.Year%100)
	}
	return fmt.Sprintf("monthly_xml_%04d-%02d.xml", m.Year, int(m.Month))
}

// URL returns the address the table of m is downloaded from.
func (p *Provider) URL(m Month) string {
	base := p.CurrentURL
	if m.first().Before(p.Cutover) {
		base = p.LegacyURL
	}
	return base + "/" + p.Filename(m)
}

// cached returns the raw table, downloading it first when it is not in the cache.
func (p *Provider) cached(m Month) ([]byte, error) {
	file := filepath.Join(p.CacheDir, p.Filename(m))
	content, err := os.ReadFile(file)
	if err == nil {
		p.Logger.Debug().Str("file", file).Msg("rates cache hit")
		return content, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read rates cache: %w", err)
	}

	addr := p.URL(m)
	content, err = p.download(addr)
	if err != nil {
		return nil, &RateSourceUnavailableError{URL: addr, Err: err}
	}
	if err := p.store(file, content); err != nil {
		p.Logger.Warn().Err(err).Str("file", file).Msg("rates cache write failed (ignored)")
	}
	return content, nil
}

func (p *Provider) download(addr string) ([]byte, error) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	p.Logger.Info().Str("url", addr).Str("status", resp.Status).Msg("downloaded rates")
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// store writes the raw table verbatim.
func (p *Provider) store(file string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file, content, 0o644)
}
