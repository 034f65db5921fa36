package cgt

import (
	"encoding/json"
)

func (p Pool) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quantity", p.Quantity)
	w.Append("average", p.Average.Fixed())
	w.Append("cost", p.Cost().Fixed())
	return w.MarshalJSON()
}

// MarshalJSON exports the holding with GBP amounts resolved through its rate provider.
func (h *Holding) MarshalJSON() ([]byte, error) {
	txs := make([]json.RawMessage, 0, len(h.history))
	for i, tx := range h.history {
		rate, err := tx.ExchangeRate(h.rates)
		if err != nil {
			return nil, err
		}
		var w jsonObjectWriter
		w.Append("date", tx.on)
		w.Append("kind", tx.Kind())
		w.Optional("quantity", tx.quantity.value.IntPart())
		w.Optional("description", tx.description)
		w.Append("currency", tx.Currency())
		w.Append("balanceChange", tx.BalanceChange().Fixed())
		w.Append("rate", rate.String())
		w.Append("balanceChangeGBP", tx.BalanceChange().Convert(rate).Fixed())
		if tx.Kind() == Disposal {
			w.Append("gain", tx.gain.Fixed())
			w.Append("unmatched", tx.remaining.value.IntPart())
		}
		w.Optional("narrative", tx.Narrative())
		w.Append("pool", h.pools[i])
		raw, err := w.MarshalJSON()
		if err != nil {
			return nil, err
		}
		txs = append(txs, raw)
	}

	var w jsonObjectWriter
	w.Append("symbol", h.symbol)
	w.Append("pool", h.pool)
	w.Append("transactions", txs)
	return w.MarshalJSON()
}

// MarshalJSON exports every holding of the account.
func (a *Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("holdings", a.holdings)
	return w.MarshalJSON()
}
