// Package cmd implements the CLI application computing UK capital gains from a brokerage export.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cgt"
	"github.com/etnz/cgt/config"
	"github.com/etnz/cgt/logger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&processCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")
	c.Register(&explainCmd{}, "reports")

	c.Register(&ratesCmd{}, "exchange rates")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cgt.yaml", "Path to the YAML configuration file, ignored when missing")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Verbose output")

// setup loads the configuration and attaches the logger to ctx.
func setup(ctx context.Context) (context.Context, *config.Config, error) {
	log := logger.New(os.Stderr, logger.Level(*Verbose))
	ctx = logger.WithContext(ctx, log)
	cfg, err := config.Load(*configFile)
	if err != nil {
		return ctx, nil, err
	}
	log.Debug().Str("config", *configFile).Str("cache", cfg.CacheDir).Int("workers", cfg.Workers).Msg("configuration loaded")
	return ctx, cfg, nil
}

// loadAccount reads the brokerage export at path and processes it with HMRC rates.
func loadAccount(ctx context.Context, cfg *config.Config, path string) (*cgt.Account, error) {
	log := logger.FromContext(ctx)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	txs, err := cgt.ReadTransactions(f, cfg.Symbols())
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	log.Debug().Str("file", path).Int("transactions", len(txs)).Msg("export loaded")

	rates, err := cfg.Provider()
	if err != nil {
		return nil, err
	}
	rates.Logger = log

	account := cgt.NewAccount(rates, cfg.Workers)
	if err := account.Process(txs); err != nil {
		return nil, err
	}
	return account, nil
}

// inputFile checks that the command received a single existing file.
func inputFile(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one brokerage export file")
		return "", false
	}
	path := f.Arg(0)
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error accessing input file: %v\n", err)
		return "", false
	}
	return path, true
}

// printMarkdown renders md for the terminal, or prints it raw when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
