package cgt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// SymbolTable maps a leading currency symbol to its ISO code.
type SymbolTable map[string]string

// DefaultSymbols returns the symbols found in UK brokerage exports.
func DefaultSymbols() SymbolTable {
	return SymbolTable{"$": "USD", "€": "EUR", "£": "GBP"}
}

// Validate checks that every symbol is a single rune mapped to a known ISO code.
func (st SymbolTable) Validate() error {
	for symbol, code := range st {
		if utf8.RuneCountInString(symbol) != 1 {
			return fmt.Errorf("currency symbol %q must be a single character", symbol)
		}
		if err := ValidateCurrency(code); err != nil {
			return fmt.Errorf("currency symbol %q: %w", symbol, err)
		}
	}
	return nil
}

// Currency returns the ISO code of the leading symbol of raw.
func (st SymbolTable) Currency(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	r, _ := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError {
		return "", &UnknownCurrencySymbolError{Symbol: "", Raw: raw}
	}
	code, ok := st[string(r)]
	if !ok {
		return "", &UnknownCurrencySymbolError{Symbol: string(r), Raw: raw}
	}
	return code, nil
}

// ParsePrice reads a currency-prefixed amount like "$12.50".
func (st SymbolTable) ParsePrice(raw string) (decimal.Decimal, string, error) {
	code, err := st.Currency(raw)
	if err != nil {
		return decimal.Zero, "", err
	}
	raw = strings.TrimSpace(raw)
	_, size := utf8.DecodeRuneInString(raw)
	amount, err := decimal.NewFromString(strings.TrimSpace(raw[size:]))
	if err != nil {
		return decimal.Zero, "", &MalformedAmountError{Raw: raw, Err: err}
	}
	return amount, code, nil
}

// ParseMaybeAmount returns zero for a blank input, otherwise the number made of the digits
// and decimal points of raw. Signs, symbols and thousand separators are dropped.
func ParseMaybeAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	digits := strings.Map(func(r rune) rune {
		if r == '.' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, raw)
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, &MalformedAmountError{Raw: raw, Err: err}
	}
	return amount, nil
}
