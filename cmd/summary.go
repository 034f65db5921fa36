package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	year string
	html bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the capital gains of each tax year" }
func (*summaryCmd) Usage() string {
	return `cgt summary [-y <tax year>] [-html] <file.csv>

  Displays, for each security, the disposals, gains, losses and dividends of the tax
  year and the Section 104 pools at its end. Without -y every tax year of the export
  is displayed.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Tax year to report on, e.g. 2021-22.")
	f.BoolVar(&c.html, "html", false, "Print HTML instead of terminal output.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var years []date.TaxYear
	if c.year != "" {
		y, err := date.ParseTaxYear(c.year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing tax year: %v\n", err)
			return subcommands.ExitUsageError
		}
		years = append(years, y)
	}
	input, ok := inputFile(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	ctx, cfg, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	account, err := loadAccount(ctx, cfg, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	if len(years) == 0 {
		years = account.TaxYears()
	}

	md, err := summaryMarkdown(account, years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing %q: %v\n", input, err)
		return subcommands.ExitFailure
	}

	if c.html {
		html, err := toHTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting to HTML: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Print(html)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func summaryMarkdown(account *cgt.Account, years []date.TaxYear) (string, error) {
	var b strings.Builder
	for _, year := range years {
		summaries, err := account.Summaries(year)
		if err != nil {
			return "", err
		}
		b.WriteString(renderer.TaxYearMarkdown(summaries, year))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func toHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.Table)).Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
