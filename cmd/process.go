package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/config"
	"github.com/etnz/cgt/date"
	"github.com/etnz/cgt/logger"
	"github.com/google/subcommands"
)

type processCmd struct{}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "compute the capital gains of a brokerage export" }
func (*processCmd) Usage() string {
	return `cgt process <file.csv>

  Matches every acquisition and disposal of the export against its Section 104 pool
  and the bed and breakfast rule, and writes <file>-processed.csv along with one
  <file>-processed-YY-YY.csv per tax year.
`
}

func (*processCmd) SetFlags(f *flag.FlagSet) {}

func (*processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input, ok := inputFile(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	ctx, cfg, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := process(ctx, cfg, input); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// process writes the full report and the tax year reports of input, and returns the written paths.
func process(ctx context.Context, cfg *config.Config, input string) ([]string, error) {
	log := logger.FromContext(ctx)
	account, err := loadAccount(ctx, cfg, input)
	if err != nil {
		return nil, err
	}

	years, err := cfg.Years()
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		years = account.TaxYears()
	}

	holdings := account.Holdings()
	out := ProcessedPath(input)
	if err := writeFile(out, func(w io.Writer) error { return cgt.WriteCSV(w, holdings) }); err != nil {
		return nil, err
	}
	log.Info().Str("file", out).Int("symbols", len(holdings)).Msg("report written")
	written := []string{out}

	for _, year := range years {
		out := TaxYearPath(input, year)
		if err := writeFile(out, func(w io.Writer) error { return cgt.WriteTaxYearCSV(w, holdings, year) }); err != nil {
			return written, err
		}
		log.Info().Str("file", out).Stringer("year", year).Msg("tax year report written")
		written = append(written, out)
	}
	return written, nil
}

// ProcessedPath returns the path of the full report of input.
func ProcessedPath(input string) string {
	return strings.TrimSuffix(input, ".csv") + "-processed.csv"
}

// TaxYearPath returns the path of the report of input restricted to year.
func TaxYearPath(input string, year date.TaxYear) string {
	return strings.TrimSuffix(input, ".csv") + "-processed-" + year.Suffix() + ".csv"
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return f.Close()
}
