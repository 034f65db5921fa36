// Command cgt computes UK capital gains from a brokerage account export.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cgt/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"process": {Args: predict.Files("*.csv")},
		"summary": {
			Flags: map[string]complete.Predictor{
				"y":    predict.Nothing,
				"html": predict.Nothing,
			},
			Args: predict.Files("*.csv"),
		},
		"query": {Args: predict.Files("*.csv")},
		"explain": {
			Flags: map[string]complete.Predictor{
				"s":     predict.Nothing,
				"model": predict.Set{"gemini-2.5-flash", "gemini-2.5-pro"},
			},
			Args: predict.Files("*.csv"),
		},
		"rates": {
			Flags: map[string]complete.Predictor{
				"c": predict.Set{"USD", "EUR", "JPY", "CHF", "CAD", "AUD"},
				"d": predict.Nothing,
			},
		},
		"topic":    {Args: predict.Set{"readme", "section104", "bed-and-breakfast", "rates", "reports"}},
		"help":     {},
		"flags":    {},
		"commands": {},
	},
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
		"v":      predict.Nothing,
	},
}

func main() {
	// exits when invoked by the shell to complete the command line.
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
