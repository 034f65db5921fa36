package cgt

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

// RateProvider converts an account currency into pounds.
//
// Rate returns how many units of currency buy one pound on the given day, so that
// amount/rate is the value in GBP. GBP itself must return 1.
type RateProvider interface {
	Rate(currency string, on date.Date) (decimal.Decimal, error)
}

// Row holds the typed fields of one line of a brokerage export.
type Row struct {
	SettlementDate  date.Date
	TransactionDate date.Date
	Symbol          string
	SEDOL           string
	ISIN            string
	Quantity        int64 // 0 when the row has no quantity
	Price           Money
	Description     string
	Reference       string
	Debit           Money
	Credit          Money
	RunningBalance  Money // its currency is the account currency
}

// Transaction is one classified line of a brokerage export.
//
// The fields read from the export never change. Only the matching state (remaining
// quantity, realized gain and its narrative) evolves, and only through the Holding
// the transaction was added to.
type Transaction struct {
	settled     date.Date
	on          date.Date
	symbol      string
	sedol       string
	isin        string
	quantity    Quantity
	hasQuantity bool
	price       Money
	description string
	reference   string
	debit       Money
	credit      Money
	balance     Money

	// owned by Holding
	remaining Quantity
	gain      Money
	narrative []string
	poolCost  Money // pool average per share when disposed
}

// NewTransaction creates a transaction from a typed row.
func NewTransaction(r Row) Transaction {
	q := r.Quantity
	if q < 0 {
		// some exports sign the quantity of disposals
		q = -q
	}
	tx := Transaction{
		settled:     r.SettlementDate,
		on:          r.TransactionDate,
		symbol:      strings.TrimSpace(r.Symbol),
		sedol:       r.SEDOL,
		isin:        r.ISIN,
		quantity:    Q(q),
		hasQuantity: q != 0,
		price:       r.Price,
		description: r.Description,
		reference:   strings.TrimSpace(r.Reference),
		debit:       r.Debit,
		credit:      r.Credit,
		balance:     r.RunningBalance,
	}
	tx.remaining = tx.quantity
	return tx
}

func (t Transaction) Date() date.Date           { return t.on }
func (t Transaction) SettlementDate() date.Date { return t.settled }
func (t Transaction) Symbol() string            { return t.symbol }
func (t Transaction) SEDOL() string             { return t.sedol }
func (t Transaction) ISIN() string              { return t.isin }
func (t Transaction) Quantity() Quantity        { return t.quantity }
func (t Transaction) HasQuantity() bool         { return t.hasQuantity }
func (t Transaction) Price() Money              { return t.price }
func (t Transaction) Description() string       { return t.description }
func (t Transaction) Reference() string         { return t.reference }
func (t Transaction) Debit() Money              { return t.debit }
func (t Transaction) Credit() Money             { return t.credit }
func (t Transaction) RunningBalance() Money     { return t.balance }

// Currency is the account currency, taken from the running balance.
func (t Transaction) Currency() string { return t.balance.Currency() }

// Remaining is the quantity of a disposal not yet matched against a repurchase.
func (t Transaction) Remaining() Quantity { return t.remaining }

// Gain is the realized gain or loss in GBP. It is only set on disposals.
func (t Transaction) Gain() Money { return t.gain }

// Narrative explains how the gain was sourced.
func (t Transaction) Narrative() string { return strings.Join(t.narrative, "; ") }

func (t *Transaction) note(format string, args ...any) {
	t.narrative = append(t.narrative, fmt.Sprintf(format, args...))
}

// Kind classifies the transaction from its description, symbol, reference and debit.
func (t Transaction) Kind() Kind {
	switch {
	case strings.HasPrefix(t.description, "Div "):
		return Dividend
	case t.symbol != "" && t.reference != "":
		if t.debit.IsPositive() {
			return Acquisition
		}
		return Disposal
	default:
		return Cash
	}
}

// BalanceChange is the signed cash effect in the account currency, positive for inflows.
func (t Transaction) BalanceChange() Money {
	if t.credit.IsPositive() {
		return M(t.credit.value, t.Currency())
	}
	return M(t.debit.value.Neg(), t.Currency())
}

// ExchangeRate returns the GBP rate of the account currency on the transaction date.
func (t Transaction) ExchangeRate(rates RateProvider) (decimal.Decimal, error) {
	rate, err := rates.Rate(t.Currency(), t.on)
	if err != nil {
		return decimal.Zero, fmt.Errorf("exchange rate for %s on %s: %w", t.Currency(), t.on, err)
	}
	return rate, nil
}

// BalanceChangeGBP is BalanceChange converted to pounds.
func (t Transaction) BalanceChangeGBP(rates RateProvider) (Money, error) {
	rate, err := t.ExchangeRate(rates)
	if err != nil {
		return Money{}, err
	}
	return t.BalanceChange().Convert(rate), nil
}

func (t Transaction) String() string {
	if t.hasQuantity {
		return fmt.Sprintf("%s %s %s %s %s", t.on, t.Kind(), t.quantity, t.symbol, t.BalanceChange())
	}
	return fmt.Sprintf("%s %s %s %s", t.on, t.Kind(), t.symbol, t.BalanceChange())
}
