package hmrc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// xmlTable is any root element holding one element per currency.
type xmlTable struct {
	Rates []xmlRate `xml:",any"`
}

type xmlRate struct {
	Code string `xml:"currencyCode"`
	Rate string `xml:"rateNew"`
}

// Parse decodes a monthly table.
func Parse(content []byte) (Table, error) {
	var doc xmlTable
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		// published tables declare ISO-8859-1 but only use ASCII
		return input, nil
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid rates table: %w", err)
	}
	t := make(Table, len(doc.Rates))
	for _, r := range doc.Rates {
		code := strings.TrimSpace(r.Code)
		if code == "" {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(r.Rate))
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q for %s: %w", r.Rate, code, err)
		}
		t[code] = rate
	}
	return t, nil
}
