package cgt

import (
	"fmt"
	"slices"

	"github.com/etnz/cgt/date"
	"golang.org/x/sync/errgroup"
)

// Account dispatches the transactions of a brokerage account into one Holding per symbol.
type Account struct {
	rates    RateProvider
	workers  int
	holdings []*Holding // in order of first transaction
	symbols  map[string]*Holding
	span     date.Range
}

// NewAccount creates an empty account. workers bounds how many holdings are processed
// concurrently, each holding is always processed sequentially.
func NewAccount(rates RateProvider, workers int) *Account {
	if workers < 1 {
		workers = 1
	}
	return &Account{
		rates:   rates,
		workers: workers,
		symbols: make(map[string]*Holding),
	}
}

// Process sorts txs by transaction date and feeds them to their holding.
// Rows without a symbol are pure cash movements and are not kept.
func (a *Account) Process(txs []Transaction) error {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(x, y Transaction) int { return x.on.Compare(y.on) })

	batches := make(map[*Holding][]Transaction)
	var order []*Holding
	for _, tx := range sorted {
		if tx.symbol == "" {
			continue
		}
		a.extend(tx.on)
		h := a.Holding(tx.symbol)
		if h == nil {
			h = NewHolding(tx.symbol, a.rates)
			a.symbols[tx.symbol] = h
			a.holdings = append(a.holdings, h)
		}
		if _, ok := batches[h]; !ok {
			order = append(order, h)
		}
		batches[h] = append(batches[h], tx)
	}

	g := new(errgroup.Group)
	g.SetLimit(a.workers)
	for _, h := range order {
		g.Go(func() error {
			for _, tx := range batches[h] {
				if err := h.AddTransaction(tx); err != nil {
					return fmt.Errorf("processing %s: %w", tx, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *Account) extend(on date.Date) {
	if a.span.From.IsZero() || on.Before(a.span.From) {
		a.span.From = on
	}
	if on.After(a.span.To) {
		a.span.To = on
	}
}

// Holding returns the holding of symbol or nil.
func (a *Account) Holding(symbol string) *Holding { return a.symbols[symbol] }

// Holdings returns every holding in order of first transaction.
func (a *Account) Holdings() []*Holding { return slices.Clone(a.holdings) }

// TaxYears lists the tax years spanned by the processed transactions.
func (a *Account) TaxYears() []date.TaxYear {
	if len(a.holdings) == 0 {
		return nil
	}
	return date.TaxYearsBetween(a.span)
}
