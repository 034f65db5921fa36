package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt"
)

// HoldingMarkdown renders the ledger of a holding with the pool after each transaction.
func HoldingMarkdown(h *cgt.Holding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", h.Symbol())
	pool := h.Pool()
	fmt.Fprintf(&b, "Section 104 pool: %s shares at an average of %s (cost %s).\n\n", pool.Quantity, pool.Average, pool.Cost())

	fmt.Fprintln(&b, "| Date | Type | Quantity | Amount | Gain | Pool | Sourcing |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|:---|")
	for i, tx := range h.Transactions() {
		var quantity, gain string
		if tx.HasQuantity() {
			quantity = tx.Quantity().String()
		}
		if tx.Kind() == cgt.Disposal {
			gain = tx.Gain().String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date(), tx.Kind(), quantity, tx.BalanceChange(), gain, h.PoolAfter(i).Quantity, cell(tx.Narrative()))
	}
	return b.String()
}
