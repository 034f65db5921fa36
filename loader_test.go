package cgt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = "\ufeff" + `Settlement Date,Date,Symbol,Sedol,ISIN,Quantity,Price,Description,Reference,Debit,Credit,Running Balance
06/01/2021,04/01/2021,VOD,BH4HKS3,GB00BH4HKS39,"1,000",£1.20,Purchase of VOD,REF1,"£1,200.00",,£8800.00
01/02/2021,01/02/2021,,,,,,Debit card payment,,,£500.00,£9300.00
12/03/2021,10/03/2021,VOD,BH4HKS3,GB00BH4HKS39,400,£1.50,Sale of VOD,REF2,,£600.00,£9900.00
,,,,,,,,,,,
Settlement Date,Date,Symbol,Sedol,ISIN,Quantity,Price,Description,Reference,Debit,Credit,Running Balance
15/05/2021,15/05/2021,VOD,,,,,Div VOD,,,£12.34,£9912.34
`

func TestReadTransactions(t *testing.T) {
	txs, err := ReadTransactions(strings.NewReader(export), DefaultSymbols())
	require.NoError(t, err)
	require.Len(t, txs, 4)

	buy := txs[0]
	assert.Equal(t, "2021-01-04", buy.Date().String())
	assert.Equal(t, "2021-01-06", buy.SettlementDate().String())
	assert.Equal(t, Acquisition, buy.Kind())
	assert.Equal(t, "1000", buy.Quantity().String())
	assert.Equal(t, "GB00BH4HKS39", buy.ISIN())
	assert.Equal(t, "GBP", buy.Currency())
	assert.Equal(t, "-1200.00", buy.BalanceChange().Fixed())

	assert.Equal(t, Cash, txs[1].Kind())
	assert.Equal(t, Disposal, txs[2].Kind())
	assert.Equal(t, "600.00", txs[2].BalanceChange().Fixed())
	assert.Equal(t, Dividend, txs[3].Kind())
	assert.False(t, txs[3].HasQuantity())
}

func TestReadTransactions_ForeignAccount(t *testing.T) {
	testCases := []struct {
		balance  string
		currency string
	}{
		{balance: "$1000.00", currency: "USD"},
		{balance: "€1000.00", currency: "EUR"},
	}
	for _, tc := range testCases {
		t.Run(tc.currency, func(t *testing.T) {
			in := "04/01/2021,04/01/2021,AAPL,,,10,,Purchase,R1,250.00,," + tc.balance + "\n"
			txs, err := ReadTransactions(strings.NewReader(in), DefaultSymbols())
			require.NoError(t, err)
			require.Len(t, txs, 1)
			assert.Equal(t, tc.currency, txs[0].Currency())
			assert.Equal(t, tc.currency, txs[0].Debit().Currency())
		})
	}
}

func TestReadTransactions_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		target error
		line   string
	}{
		{
			name:   "unknown currency",
			input:  "04/01/2021,04/01/2021,VOD,,,10,,Purchase,R1,¥250,,¥1000\n",
			target: ErrUnknownCurrencySymbol,
			line:   "line 1",
		},
		{
			name:   "fractional quantity",
			input:  "04/01/2021,04/01/2021,VOD,,,10,,Purchase,R1,£250,,£1000\n04/01/2021,05/01/2021,VOD,,,1.5,,Purchase,R2,£250,,£1000\n",
			target: ErrMalformedAmount,
			line:   "line 2",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadTransactions(strings.NewReader(tc.input), DefaultSymbols())
			assert.ErrorIs(t, err, tc.target)
			assert.ErrorContains(t, err, tc.line)
		})
	}

	t.Run("short row", func(t *testing.T) {
		_, err := ReadTransactions(strings.NewReader("04/01/2021,04/01/2021,VOD\n"), DefaultSymbols())
		assert.ErrorContains(t, err, "expected 12 columns")
	})
	t.Run("bad date", func(t *testing.T) {
		_, err := ReadTransactions(strings.NewReader("2021-01-04,04/01/2021,VOD,,,10,,Purchase,R1,£250,,£1000\n"), DefaultSymbols())
		assert.ErrorContains(t, err, "settlement date")
	})
}
