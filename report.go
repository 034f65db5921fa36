package cgt

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etnz/cgt/date"
)

// Header is the first row of every block of a processed report.
var Header = []string{
	"Transaction date",
	"Type",
	"Symbol",
	"Price",
	"Description",
	"Quantity",
	"Balance Change",
	"Exchange rate",
	"Balance Change (GBP)",
	"Gain/Loss (GBP)",
	"Dividend (GBP)",
	"Gain/Loss sourcing",
}

// Record formats tx as a report row.
func Record(tx Transaction, rates RateProvider) ([]string, error) {
	rate, err := tx.ExchangeRate(rates)
	if err != nil {
		return nil, err
	}
	gbp := tx.BalanceChange().Convert(rate)

	var price, quantity, gain, dividend string
	if !tx.price.IsZero() {
		price = tx.price.value.String()
	}
	if tx.hasQuantity {
		quantity = tx.quantity.String()
	}
	switch tx.Kind() {
	case Disposal:
		gain = tx.gain.Fixed()
	case Dividend:
		dividend = gbp.Fixed()
	}

	return []string{
		tx.on.String(),
		tx.Kind().String(),
		tx.symbol,
		price,
		tx.description,
		quantity,
		tx.BalanceChange().Fixed(),
		rate.String(),
		gbp.Fixed(),
		gain,
		dividend,
		tx.Narrative(),
	}, nil
}

// WriteCSV writes every transaction of holdings, one block per holding.
func WriteCSV(w io.Writer, holdings []*Holding) error {
	cw := csv.NewWriter(w)
	for _, h := range holdings {
		if err := writeBlock(cw, h, h.history); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTaxYearCSV writes the transactions of year. Each block starts with the
// pool as it stood after the last transaction of the year. Holdings without
// transactions in year are skipped.
func WriteTaxYearCSV(w io.Writer, holdings []*Holding, year date.TaxYear) error {
	cw := csv.NewWriter(w)
	for _, h := range holdings {
		txs, pool, ok := h.In(year.Range())
		if !ok {
			continue
		}
		summary := make([]string, len(Header))
		summary[0] = year.Range().To.String()
		summary[1] = "POOL"
		summary[2] = h.symbol
		summary[3] = pool.Average.Fixed()
		summary[4] = fmt.Sprintf("S104 pool at the end of %s", year)
		summary[5] = pool.Quantity.String()
		summary[8] = pool.Cost().Fixed()
		if err := cw.Write(summary); err != nil {
			return err
		}
		if err := writeBlock(cw, h, txs); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeBlock(cw *csv.Writer, h *Holding, txs []Transaction) error {
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, tx := range txs {
		record, err := Record(tx, h.rates)
		if err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	// blank divider row
	return cw.Write(make([]string, len(Header)))
}
