package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cgt"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the processed export with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `cgt query <file.csv> <jsonpath>

  Processes the export and evaluates the JSONPath expression against its JSON form:

    {"holdings": [{"symbol", "pool", "transactions": [{"date", "kind", "gain", ...}]}]}

  Example:

    cgt query export.csv '$.holdings[?(@.symbol == "VOD")].transactions[*].gain'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected a brokerage export file and a JSONPath expression")
		return subcommands.ExitUsageError
	}
	input, expr := f.Arg(0), f.Arg(1)
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

	result, err := query(account, expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", expr, err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// query evaluates expr on the JSON export of account.
func query(account *cgt.Account, expr string) (any, error) {
	raw, err := json.Marshal(account)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return jsonpath.Get(expr, v)
}
