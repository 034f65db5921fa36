package cgt

import (
	"fmt"

	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

// fixedRates is a RateProvider with one rate per currency, whatever the date.
type fixedRates map[string]float64

func (r fixedRates) Rate(currency string, on date.Date) (decimal.Decimal, error) {
	if currency == "GBP" {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := r[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s rate on %s", currency, on)
	}
	return decimal.NewFromFloat(rate), nil
}

var gbpOnly = fixedRates{}

// buy is a helper for test to create an acquisition of quantity shares for a total cost in pounds.
func buy(on, symbol string, quantity int64, cost float64) Transaction {
	return NewTransaction(Row{
		SettlementDate:  date.MustParse(on).Add(2),
		TransactionDate: date.MustParse(on),
		Symbol:          symbol,
		Quantity:        quantity,
		Price:           GBP(cost / float64(quantity)),
		Description:     fmt.Sprintf("Purchase of %d %s", quantity, symbol),
		Reference:       "B" + on,
		Debit:           GBP(cost),
		RunningBalance:  GBP(10000),
	})
}

// sell is a helper for test to create a disposal of quantity shares for total proceeds in pounds.
func sell(on, symbol string, quantity int64, proceeds float64) Transaction {
	return NewTransaction(Row{
		SettlementDate:  date.MustParse(on).Add(2),
		TransactionDate: date.MustParse(on),
		Symbol:          symbol,
		Quantity:        quantity,
		Price:           GBP(proceeds / float64(quantity)),
		Description:     fmt.Sprintf("Sale of %d %s", quantity, symbol),
		Reference:       "S" + on,
		Credit:          GBP(proceeds),
		RunningBalance:  GBP(10000),
	})
}

// dividend is a helper for test to create a dividend payment in pounds.
func dividend(on, symbol string, amount float64) Transaction {
	return NewTransaction(Row{
		SettlementDate:  date.MustParse(on),
		TransactionDate: date.MustParse(on),
		Symbol:          symbol,
		Description:     "Div " + symbol,
		Credit:          GBP(amount),
		RunningBalance:  GBP(10000),
	})
}

// deposit is a helper for test to create a cash movement without symbol.
func deposit(on string, amount float64) Transaction {
	return NewTransaction(Row{
		SettlementDate:  date.MustParse(on),
		TransactionDate: date.MustParse(on),
		Description:     "Debit card payment",
		Credit:          GBP(amount),
		RunningBalance:  GBP(10000),
	})
}
