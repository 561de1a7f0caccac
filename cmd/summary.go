package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/etnz/equity/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a valuation summary of all grants" }
func (*summaryCmd) Usage() string {
	return `eqc summary [-d <date>]

  Displays, per symbol, the vested and unvested units of all RSU and
  options grants, their values at the recorded prices, and the next
  vesting date.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", equity.Today().String(), "Date for the summary, in YYYY-MM-DD format.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := equity.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap, err := LoadSnapshot(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var results []equity.ValuationResult
	for _, symbol := range book.Symbols() {
		r, err := book.Valuation(symbol, snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error valuing %q: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		if r.Symbol == "" {
			continue // symbol has only ESPP plans, see the espp command
		}
		results = append(results, r)
	}

	printMarkdown(renderer.SummaryMarkdown(on, results))
	return subcommands.ExitSuccess
}
