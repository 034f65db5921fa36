package cgt

import (
	"github.com/etnz/cgt/date"
)

// Summary aggregates the activity of one holding over a tax year.
type Summary struct {
	Symbol    string
	Year      date.TaxYear
	Disposals int
	Proceeds  Money // disposal proceeds in GBP
	Gains     Money // sum of the positive disposal gains
	Losses    Money // sum of the negative disposal gains, as a negative amount
	Dividends Money
	Pool      Pool // pool after the last transaction of the year
}

// Net returns the gains net of losses.
func (s Summary) Net() Money { return s.Gains.Add(s.Losses) }

// Summary aggregates the transactions of year. ok is false when the holding has no transaction in year.
func (h *Holding) Summary(year date.TaxYear) (s Summary, ok bool, err error) {
	txs, pool, ok := h.In(year.Range())
	if !ok {
		return Summary{}, false, nil
	}
	s = Summary{
		Symbol:    h.symbol,
		Year:      year,
		Proceeds:  GBP(0),
		Gains:     GBP(0),
		Losses:    GBP(0),
		Dividends: GBP(0),
		Pool:      pool,
	}
	for _, tx := range txs {
		switch tx.Kind() {
		case Disposal:
			proceeds, err := tx.BalanceChangeGBP(h.rates)
			if err != nil {
				return Summary{}, false, err
			}
			s.Disposals++
			s.Proceeds = s.Proceeds.Add(proceeds)
			if tx.gain.IsNegative() {
				s.Losses = s.Losses.Add(tx.gain)
			} else {
				s.Gains = s.Gains.Add(tx.gain)
			}
		case Dividend:
			amount, err := tx.BalanceChangeGBP(h.rates)
			if err != nil {
				return Summary{}, false, err
			}
			s.Dividends = s.Dividends.Add(amount)
		}
	}
	return s, true, nil
}

// Summaries returns the summary of every holding with transactions in year.
func (a *Account) Summaries(year date.TaxYear) ([]Summary, error) {
	var all []Summary
	for _, h := range a.holdings {
		s, ok, err := h.Summary(year)
		if err != nil {
			return nil, err
		}
		if ok {
			all = append(all, s)
		}
	}
	return all, nil
}
