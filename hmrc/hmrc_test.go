package hmrc

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/cgt/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const may2021 = `<?xml version="1.0" encoding="UTF-8"?>
<exchangeRateMonthList Period="01/May/2021 to 31/May/2021">
  <exchangeRate>
    <countryName>USA</countryName>
    <countryCode>US</countryCode>
    <currencyName>Dollar</currencyName>
    <currencyCode>USD</currencyCode>
    <rateNew>1.3886</rateNew>
  </exchangeRate>
  <exchangeRate>
    <countryName>Eurozone</countryName>
    <countryCode>EU</countryCode>
    <currencyName>Euro</currencyName>
    <currencyCode>EUR</currencyCode>
    <rateNew>1.1533</rateNew>
  </exchangeRate>
</exchangeRateMonthList>`

const may2020 = `<?xml version="1.0" encoding="ISO-8859-1"?>
<exchangeRateMonthList Period="01/May/2020 to 31/May/2020">
  <exchangeRate>
    <currencyCode>USD</currencyCode>
    <rateNew>1.2405</rateNew>
  </exchangeRate>
</exchangeRateMonthList>`

// newServer serves the two tables above and counts requests.
func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/current/monthly_xml_2021-05.xml":
			fmt.Fprint(w, may2021)
		case "/legacy/exrates-monthly-0520.XML":
			fmt.Fprint(w, may2020)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newProvider(t *testing.T, base string) *Provider {
	p := New(t.TempDir())
	p.LegacyURL = base + "/legacy"
	p.CurrentURL = base + "/current"
	return p
}

func TestProvider_GBP(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "unused"))
	p.CurrentURL = "http://127.0.0.1:0"
	for _, on := range []string{"1999-01-01", "2021-05-03", "2030-12-31"} {
		rate, err := p.Rate("GBP", date.MustParse(on))
		require.NoError(t, err)
		assert.Equal(t, "1", rate.String())
	}
	assert.NoDirExists(t, p.CacheDir)
}

func TestProvider_Rate(t *testing.T) {
	var hits atomic.Int32
	server := newServer(t, &hits)
	p := newProvider(t, server.URL)

	rate, err := p.Rate("USD", date.MustParse("2021-05-03"))
	require.NoError(t, err)
	assert.Equal(t, "1.3886", rate.String())

	// same month, served from memory
	rate, err = p.Rate("EUR", date.MustParse("2021-05-31"))
	require.NoError(t, err)
	assert.Equal(t, "1.1533", rate.String())
	assert.Equal(t, int32(1), hits.Load())

	// before the cutover the legacy endpoint and naming are used
	rate, err = p.Rate("USD", date.MustParse("2020-05-14"))
	require.NoError(t, err)
	assert.Equal(t, "1.2405", rate.String())
	assert.FileExists(t, filepath.Join(p.CacheDir, "exrates-monthly-0520.XML"))
}

func TestProvider_CacheIsReusedAcrossRuns(t *testing.T) {
	var hits atomic.Int32
	server := newServer(t, &hits)
	p := newProvider(t, server.URL)

	_, err := p.Rate("USD", date.MustParse("2021-05-03"))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(p.CacheDir, "monthly_xml_2021-05.xml"))
	require.NoError(t, err)
	assert.Equal(t, may2021, string(raw), "the table is cached verbatim")

	// a new provider on the same directory never hits the network
	again := New(p.CacheDir)
	again.CurrentURL = "http://127.0.0.1:0"
	rate, err := again.Rate("USD", date.MustParse("2021-05-20"))
	require.NoError(t, err)
	assert.Equal(t, "1.3886", rate.String())
	assert.Equal(t, int32(1), hits.Load())
}

func TestProvider_UnknownCurrency(t *testing.T) {
	var hits atomic.Int32
	server := newServer(t, &hits)
	p := newProvider(t, server.URL)

	_, err := p.Rate("JPY", date.MustParse("2021-05-03"))
	var unknown *UnknownCurrencyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "JPY", unknown.Currency)
	assert.Equal(t, Month{2021, time.May}, unknown.Month)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestProvider_SourceUnavailable(t *testing.T) {
	var hits atomic.Int32
	server := newServer(t, &hits)
	p := newProvider(t, server.URL)

	_, err := p.Rate("USD", date.MustParse("2022-01-10"))
	var unavailable *RateSourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, server.URL+"/current/monthly_xml_2022-01.xml", unavailable.URL)
	assert.ErrorIs(t, err, ErrRateSourceUnavailable)
	assert.NoFileExists(t, filepath.Join(p.CacheDir, "monthly_xml_2022-01.xml"))
}

func TestProvider_Filename(t *testing.T) {
	p := New("cache")
	testCases := []struct {
		month Month
		want  string
	}{
		{Month{2020, time.December}, "exrates-monthly-1220.XML"},
		{Month{2009, time.March}, "exrates-monthly-0309.XML"},
		{Month{2021, time.January}, "monthly_xml_2021-01.xml"},
		{Month{2024, time.November}, "monthly_xml_2024-11.xml"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, p.Filename(tc.month), tc.month.String())
	}
	assert.Equal(t, LegacyURL+"/exrates-monthly-1220.XML", p.URL(Month{2020, time.December}))
	assert.Equal(t, CurrentURL+"/monthly_xml_2021-01.xml", p.URL(Month{2021, time.January}))
}

func TestParse(t *testing.T) {
	table, err := Parse([]byte(may2021))
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Equal(t, "1.1533", table["EUR"].String())

	_, err = Parse([]byte(`<list><exchangeRate><currencyCode>USD</currencyCode><rateNew>abc</rateNew></exchangeRate></list>`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not xml`))
	assert.Error(t, err)
}
