package cgt

import (
	"errors"
	"fmt"

	"github.com/etnz/cgt/date"
)

var (
	// ErrUnknownCurrencySymbol is matched by *UnknownCurrencySymbolError.
	ErrUnknownCurrencySymbol = errors.New("unknown currency symbol")
	// ErrMalformedAmount is matched by *MalformedAmountError.
	ErrMalformedAmount = errors.New("malformed amount")
	// ErrSameDayTrading is matched by *SameDayTradingError.
	ErrSameDayTrading = errors.New("same day trading is not supported")
)

// UnknownCurrencySymbolError reports a leading currency symbol missing from the SymbolTable.
type UnknownCurrencySymbolError struct {
	Symbol string
	Raw    string
}

func (e *UnknownCurrencySymbolError) Error() string {
	return fmt.Sprintf("unknown currency symbol %q in %q", e.Symbol, e.Raw)
}

func (e *UnknownCurrencySymbolError) Is(target error) bool { return target == ErrUnknownCurrencySymbol }

// MalformedAmountError reports a value that does not parse as a number.
type MalformedAmountError struct {
	Raw string
	Err error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("malformed amount %q: %v", e.Raw, e.Err)
}

func (e *MalformedAmountError) Unwrap() error        { return e.Err }
func (e *MalformedAmountError) Is(target error) bool { return target == ErrMalformedAmount }

// SameDayTradingError is returned by Holding.AddTransaction when a trade lands on a day
// that already has a trade for the same symbol.
type SameDayTradingError struct {
	Symbol   string
	On       date.Date
	Kind     Kind // kind of the rejected transaction
	Existing Kind // kind of the trade already recorded that day
}

func (e *SameDayTradingError) Error() string {
	if e.Kind == e.Existing {
		return fmt.Sprintf("%s: two %s trades on %s, same day trading is not supported", e.Symbol, e.Kind, e.On)
	}
	return fmt.Sprintf("%s: %s and %s trades on %s, same day trading is not supported", e.Symbol, e.Existing, e.Kind, e.On)
}

func (e *SameDayTradingError) Is(target error) bool { return target == ErrSameDayTrading }

// UnknownCurrencyCodeError reports a code that is not an ISO 4217 currency.
type UnknownCurrencyCodeError struct {
	Code string
}

func (e *UnknownCurrencyCodeError) Error() string {
	return fmt.Sprintf("unknown ISO currency code %q", e.Code)
}
