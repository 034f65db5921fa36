package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/etnz/cgt/hmrc"
	"github.com/etnz/cgt/logger"
	"github.com/google/subcommands"
)

type ratesCmd struct {
	currency string
	date     string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the HMRC exchange rate of a currency" }
func (*ratesCmd) Usage() string {
	return `cgt rates -c <currency> [-d <date>]

  Displays how many units of the currency buy one pound in the month of the date,
  according to the HMRC monthly exchange rates. The monthly table is kept in the
  cache directory.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "ISO code of the currency.")
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the rate, only its month matters.")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	currency := strings.ToUpper(c.currency)
	if err := cgt.ValidateCurrency(currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctx, cfg, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, err := cfg.Provider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rates.Logger = logger.FromContext(ctx)

	rate, err := rates.Rate(currency, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rate: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: 1 GBP = %s %s\n", hmrc.MonthOf(on), rate, currency)
	return subcommands.ExitSuccess
}
