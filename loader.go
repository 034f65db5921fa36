package cgt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

// columns of a brokerage export, in order.
const (
	colSettlementDate = iota
	colTransactionDate
	colSymbol
	colSEDOL
	colISIN
	colQuantity
	colPrice
	colDescription
	colReference
	colDebit
	colCredit
	colRunningBalance
	numColumns
)

const headerMarker = "Settlement Date"

// ReadTransactions decodes a brokerage CSV export. Header rows are skipped wherever they appear.
func ReadTransactions(r io.Reader, symbols SymbolTable) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // checked per row to report the line
	reader.TrimLeadingSpace = true

	var txs []Transaction
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(txs) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}
		if isHeader(record) || isBlank(record) {
			continue
		}
		tx, err := ParseRecord(record, symbols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func isHeader(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) == headerMarker {
			return true
		}
	}
	return false
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseRecord decodes one row of a brokerage export.
func ParseRecord(record []string, symbols SymbolTable) (Transaction, error) {
	if len(record) < numColumns {
		return Transaction{}, fmt.Errorf("expected %d columns got %d", numColumns, len(record))
	}
	settled, err := date.ParseUK(record[colSettlementDate])
	if err != nil {
		return Transaction{}, fmt.Errorf("settlement date: %w", err)
	}
	on, err := date.ParseUK(record[colTransactionDate])
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction date: %w", err)
	}
	quantity, err := parseQuantity(record[colQuantity])
	if err != nil {
		return Transaction{}, fmt.Errorf("quantity: %w", err)
	}
	cur, err := symbols.Currency(record[colRunningBalance])
	if err != nil {
		return Transaction{}, fmt.Errorf("running balance: %w", err)
	}

	amounts := make([]decimal.Decimal, 4)
	for i, col := range []int{colPrice, colDebit, colCredit, colRunningBalance} {
		amounts[i], err = ParseMaybeAmount(record[col])
		if err != nil {
			return Transaction{}, err
		}
	}

	return NewTransaction(Row{
		SettlementDate:  settled,
		TransactionDate: on,
		Symbol:          record[colSymbol],
		SEDOL:           strings.TrimSpace(record[colSEDOL]),
		ISIN:            strings.TrimSpace(record[colISIN]),
		Quantity:        quantity,
		Price:           M(amounts[0], cur),
		Description:     strings.TrimSpace(record[colDescription]),
		Reference:       record[colReference],
		Debit:           M(amounts[1], cur),
		Credit:          M(amounts[2], cur),
		RunningBalance:  M(amounts[3], cur),
	}), nil
}

func parseQuantity(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, nil
	}
	q, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &MalformedAmountError{Raw: raw, Err: err}
	}
	return q, nil
}
