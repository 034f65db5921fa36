package hmrc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCurrency is matched by *UnknownCurrencyError.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrRateSourceUnavailable is matched by *RateSourceUnavailableError.
	ErrRateSourceUnavailable = errors.New("rate source unavailable")
)

// UnknownCurrencyError reports a currency missing from a monthly table.
type UnknownCurrencyError struct {
	Currency string
	Month    Month
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no %s rate in the HMRC table of %s", e.Currency, e.Month)
}

func (e *UnknownCurrencyError) Is(target error) bool { return target == ErrUnknownCurrency }

// RateSourceUnavailableError reports a table that is neither cached nor downloadable.
type RateSourceUnavailableError struct {
	URL string
	Err error
}

func (e *RateSourceUnavailableError) Error() string {
	return fmt.Sprintf("cannot fetch rates from %s: %v", e.URL, e.Err)
}

func (e *RateSourceUnavailableError) Unwrap() error        { return e.Err }
func (e *RateSourceUnavailableError) Is(target error) bool { return target == ErrRateSourceUnavailable }
