package cgt

import "fmt"

// Kind classifies a transaction.
type Kind int

const (
	// Cash is a pure cash movement with no effect on holdings.
	Cash Kind = iota
	// Acquisition buys shares.
	Acquisition
	// Disposal sells shares.
	Disposal
	// Dividend is a dividend payment.
	Dividend
)

// String returns the short code used in reports.
func (k Kind) String() string {
	switch k {
	case Cash:
		return "CASH"
	case Acquisition:
		return "BUY"
	case Disposal:
		return "SELL"
	case Dividend:
		return "DIV"
	default:
		return "unknown"
	}
}

// IsTrade reports whether the kind moves shares.
func (k Kind) IsTrade() bool { return k == Acquisition || k == Disposal }

// ParseKind parses the short code returned by String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "CASH":
		return Cash, nil
	case "BUY":
		return Acquisition, nil
	case "SELL":
		return Disposal, nil
	case "DIV":
		return Dividend, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind: %q", s)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) { return []byte(fmt.Sprintf("%q", k.String())), nil }
