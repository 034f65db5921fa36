package cgt

import (
	"fmt"
	"slices"

	"github.com/etnz/cgt/date"
)

// bedAndBreakfastDays is the window in which a repurchase is matched against a disposal.
const bedAndBreakfastDays = 30

// Holding is the ledger of one security: its transactions in date order and its Section 104 pool.
//
// Transactions are stored by value and cross-referenced by index, a disposal is
// updated in place when a later acquisition is matched against it.
type Holding struct {
	symbol  string
	rates   RateProvider
	pool    Pool
	history []Transaction
	pools   []Pool // pool after each transaction of history
}

// NewHolding returns an empty ledger for symbol.
func NewHolding(symbol string, rates RateProvider) *Holding {
	return &Holding{
		symbol: symbol,
		rates:  rates,
		pool:   Pool{Average: GBP(0)},
	}
}

// Symbol returns the security identifier.
func (h *Holding) Symbol() string { return h.symbol }

// Pool returns the current Section 104 pool.
func (h *Holding) Pool() Pool { return h.pool }

// Len returns the number of transactions in the ledger.
func (h *Holding) Len() int { return len(h.history) }

// Transactions returns a copy of the ledger.
func (h *Holding) Transactions() []Transaction { return slices.Clone(h.history) }

// PoolAfter returns the pool right after the i-th transaction was applied.
func (h *Holding) PoolAfter(i int) Pool { return h.pools[i] }

// In returns the transactions within r and the pool after the last of them.
// ok is false when there is no transaction in r.
func (h *Holding) In(r date.Range) (txs []Transaction, pool Pool, ok bool) {
	for i, tx := range h.history {
		if r.Contains(tx.on) {
			txs = append(txs, tx)
			pool, ok = h.pools[i], true
		}
	}
	return txs, pool, ok
}

// AddTransaction applies tx to the ledger.
//
// Transactions must be added in date order. An acquisition is first matched against
// the disposals of the previous 30 days (bed and breakfasting), what is left goes into
// the pool. A disposal realizes its gain against the pool average.
//
// Two trades on the same day are rejected with a *SameDayTradingError and leave the
// ledger untouched.
func (h *Holding) AddTransaction(tx Transaction) error {
	if tx.symbol != h.symbol {
		return fmt.Errorf("cannot add %s transaction to %s holding", tx.symbol, h.symbol)
	}
	if n := len(h.history); n > 0 && tx.on.Before(h.history[n-1].on) {
		return fmt.Errorf("%s: transaction on %s added after %s", h.symbol, tx.on, h.history[n-1].on)
	}
	kind := tx.Kind()
	if kind.IsTrade() {
		for _, prev := range h.history {
			if prev.on == tx.on && prev.Kind().IsTrade() {
				return &SameDayTradingError{Symbol: h.symbol, On: tx.on, Kind: kind, Existing: prev.Kind()}
			}
		}
	}

	tx.remaining = tx.quantity
	tx.gain = Money{}
	tx.narrative = nil

	var err error
	switch kind {
	case Acquisition:
		err = h.acquire(&tx)
	case Disposal:
		err = h.dispose(&tx)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", h.symbol, err)
	}
	h.history = append(h.history, tx)
	h.pools = append(h.pools, h.pool)
	return nil
}

// matchable returns the indexes of disposals that a repurchase on day can still be matched against, oldest first.
func (h *Holding) matchable(day date.Date) []int {
	from := day.Add(-bedAndBreakfastDays)
	var idx []int
	for i, tx := range h.history {
		if tx.Kind() != Disposal || tx.remaining.IsZero() {
			continue
		}
		if !tx.on.Before(from) && tx.on.Before(day) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (h *Holding) acquire(tx *Transaction) error {
	if !tx.quantity.IsPositive() {
		return fmt.Errorf("acquisition on %s has no quantity", tx.on)
	}
	cash, err := tx.BalanceChangeGBP(h.rates)
	if err != nil {
		return err
	}
	cost := cash.Neg()

	sales := h.matchable(tx.on)
	if len(sales) == 0 {
		h.pool = h.pool.add(tx.quantity, cost)
		tx.note("Added %s to S104 pool (which now contains %s at an average of %s)", tx.quantity, h.pool.Quantity, h.pool.Average)
		return nil
	}

	// Pool quantity moves in three steps: the whole purchase is credited, each matched
	// portion is debited, and the leftover only updates the average. The pool ends with
	// exactly the unmatched shares.
	h.pool.Quantity = h.pool.Quantity.Add(tx.quantity)
	unmatched := tx.quantity
	for _, i := range sales {
		if unmatched.IsZero() {
			break
		}
		sale := &h.history[i]
		matched := sale.remaining.Min(unmatched)

		proceeds, err := sale.BalanceChangeGBP(h.rates)
		if err != nil {
			return err
		}
		matchedProceeds := proceeds.Mul(matched).Div(sale.quantity)
		matchedCost := cash.Mul(matched).Div(tx.quantity) // negative

		// The matched shares of the sale are costed at the repurchase price instead of the pool average.
		sale.gain = sale.gain.Add(sale.poolCost.Mul(matched)).Add(matchedCost)
		sale.note("%s shares matched with the repurchase of %s (cost %s, gain %s)",
			matched, tx.on, matchedCost.Neg(), matchedProceeds.Add(matchedCost))
		tx.note("Bed and breakfast: %s shares costing %s matched with the disposal of %s for %s",
			matched, matchedCost.Neg(), sale.on, matchedProceeds)

		sale.remaining = sale.remaining.Sub(matched)
		unmatched = unmatched.Sub(matched)
		h.pool.Quantity = h.pool.Quantity.Sub(matched)
	}

	if unmatched.IsPositive() {
		h.pool = h.pool.average(unmatched, cost.Mul(unmatched).Div(tx.quantity))
		tx.note("Added %s to S104 pool (which now contains %s at an average of %s)", unmatched, h.pool.Quantity, h.pool.Average)
	}
	return nil
}

func (h *Holding) dispose(tx *Transaction) error {
	if !tx.quantity.IsPositive() {
		return fmt.Errorf("disposal on %s has no quantity", tx.on)
	}
	proceeds, err := tx.BalanceChangeGBP(h.rates)
	if err != nil {
		return err
	}
	tx.poolCost = h.pool.Average
	tx.gain = proceeds.Sub(h.pool.Average.Mul(tx.quantity))
	h.pool.Quantity = h.pool.Quantity.Sub(tx.quantity)
	tx.note("Sold %s from S104 pool (which now contains %s)", tx.quantity, h.pool.Quantity)
	return nil
}
