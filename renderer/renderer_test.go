package renderer

import (
	"testing"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type gbp struct{}

func (gbp) Rate(string, date.Date) (decimal.Decimal, error) { return decimal.NewFromInt(1), nil }

func trade(on, symbol string, quantity int64, amount float64) cgt.Transaction {
	row := cgt.Row{
		TransactionDate: date.MustParse(on),
		Symbol:          symbol,
		Quantity:        quantity,
		Reference:       "R" + on,
		RunningBalance:  cgt.GBP(10000),
	}
	if amount < 0 {
		row.Debit = cgt.GBP(-amount)
	} else {
		row.Credit = cgt.GBP(amount)
	}
	return cgt.NewTransaction(row)
}

func account(t *testing.T) *cgt.Account {
	t.Helper()
	a := cgt.NewAccount(gbp{}, 1)
	require.NoError(t, a.Process([]cgt.Transaction{
		trade("2021-01-04", "VOD", 100, -1000),
		trade("2021-05-10", "VOD", 40, 600),
		trade("2021-06-01", "BP", 10, -50),
		trade("2021-07-01", "BP", 10, 40),
	}))
	return a
}

// tables parses md and returns the number of rows of each table.
func tables(t *testing.T, md string) []int {
	t.Helper()
	source := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	var rows []int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if table, ok := n.(*east.Table); ok && entering {
			rows = append(rows, table.ChildCount()-1) // minus header
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return rows
}

func TestTaxYearMarkdown(t *testing.T) {
	summaries, err := account(t).Summaries(2021)
	require.NoError(t, err)

	md := TaxYearMarkdown(summaries, 2021)
	assert.Contains(t, md, "# Capital Gains Summary 2021-22")
	assert.Contains(t, md, "| VOD | 1 | £600.00 | £200.00 | £0.00 | £200.00 | £0.00 |")
	assert.Contains(t, md, "| BP | 1 | £40.00 | £0.00 | -£10.00 | -£10.00 | £0.00 |")
	assert.Contains(t, md, "| **Total** | **2** |")
	// BP pool is empty and is not listed.
	assert.Equal(t, []int{3, 1}, tables(t, md))
}

func TestTaxYearMarkdown_Empty(t *testing.T) {
	md := TaxYearMarkdown(nil, 2019)
	assert.Contains(t, md, "No transaction in this tax year.")
	assert.Empty(t, tables(t, md))
}

func TestHoldingMarkdown(t *testing.T) {
	md := HoldingMarkdown(account(t).Holding("VOD"))
	assert.Contains(t, md, "# VOD")
	assert.Contains(t, md, "Section 104 pool: 60 shares at an average of £10.00 (cost £600.00).")
	assert.Contains(t, md, "| 2021-05-10 | SELL | 40 | £600.00 | £200.00 | 60 | Sold 40 from S104 pool (which now contains 60) |")
	assert.Equal(t, []int{2}, tables(t, md))
}
