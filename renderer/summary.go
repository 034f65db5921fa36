package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
)

// TaxYearMarkdown renders the capital gains of a tax year, one row per security.
func TaxYearMarkdown(summaries []cgt.Summary, year date.TaxYear) string {
	var b strings.Builder
	r := year.Range()

	fmt.Fprintf(&b, "# Capital Gains Summary %s\n\n", year)
	fmt.Fprintf(&b, "From %s to %s, amounts in GBP.\n\n", r.From, r.To)

	if len(summaries) == 0 {
		fmt.Fprint(&b, "No transaction in this tax year.\n")
		return b.String()
	}

	fmt.Fprint(&b, "## Gains per Security\n\n")
	fmt.Fprintln(&b, "| Security | Disposals | Proceeds | Gains | Losses | Net | Dividends |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")

	total := cgt.Summary{Proceeds: cgt.GBP(0), Gains: cgt.GBP(0), Losses: cgt.GBP(0), Dividends: cgt.GBP(0)}
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			cell(s.Symbol), s.Disposals, s.Proceeds, s.Gains, s.Losses, s.Net(), s.Dividends)
		total.Disposals += s.Disposals
		total.Proceeds = total.Proceeds.Add(s.Proceeds)
		total.Gains = total.Gains.Add(s.Gains)
		total.Losses = total.Losses.Add(s.Losses)
		total.Dividends = total.Dividends.Add(s.Dividends)
	}
	fmt.Fprintf(&b, "| **Total** | **%d** | **%s** | **%s** | **%s** | **%s** | **%s** |\n\n",
		total.Disposals, total.Proceeds, total.Gains, total.Losses, total.Net(), total.Dividends)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Section 104 Pools\n\n")
		fmt.Fprintf(w, "As of %s.\n\n", r.To)
		fmt.Fprintln(w, "| Security | Quantity | Average Cost | Pool Cost |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		listed := false
		for _, s := range summaries {
			if s.Pool.Quantity.IsZero() {
				continue
			}
			listed = true
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", cell(s.Symbol), s.Pool.Quantity, s.Pool.Average, s.Pool.Cost())
		}
		return listed
	})

	return b.String()
}
