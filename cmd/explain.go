package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type explainCmd struct {
	symbol string
	model  string
}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "explain the gains of a security in plain English" }
func (*explainCmd) Usage() string {
	return `cgt explain -s <symbol> [-model <model>] <file.csv>

  Sends the processed ledger of the security to a Gemini model and displays its
  explanation of how each gain was computed. The client is configured with the
  GEMINI_API_KEY (or GOOGLE_API_KEY) environment variable.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol of the security to explain.")
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use.")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "-s is required")
		return subcommands.ExitUsageError
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
	h := account.Holding(c.symbol)
	if h == nil {
		fmt.Fprintf(os.Stderr, "no transaction for %q in %q\n", c.symbol, input)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(explainPrompt(h)), explainConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating explanation:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}

// explainConfig instructs the model to walk through a holding ledger.
var explainConfig = &genai.GenerateContentConfig{
	SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
	You are helping a UK taxpayer understand their Capital Gains Tax computation.
	Gains are computed against the Section 104 pool average cost. A repurchase within 30 days
	after a sale is matched against that sale (bed and breakfast rule) instead of the pool.

	Explain, transaction by transaction and in plain English, how each gain or loss of the
	ledger was obtained and how the pool evolved. Amounts are in GBP. Do not give tax advice.
	`}}},
}

// explainPrompt returns the ledger of h as the user content.
func explainPrompt(h *cgt.Holding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the ledger of %s:\n\n", h.Symbol())
	b.WriteString(renderer.HoldingMarkdown(h))
	return b.String()
}
