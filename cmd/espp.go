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

// esppCmd holds the flags for the 'espp' subcommand.
type esppCmd struct {
	symbol string
	date   string
}

func (*esppCmd) Name() string     { return "espp" }
func (*esppCmd) Synopsis() string { return "simulate the ESPP purchases of a symbol" }
func (*esppCmd) Usage() string {
	return `eqc espp -s <symbol> [-d <date>]

  Simulates the employee stock purchase plan of the symbol: past
  purchases every 6 months at the discounted price, the pending
  contribution, and the gain or loss at the recorded stock price.
`
}

func (c *esppCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol of the plan.")
	f.StringVar(&c.date, "d", equity.Today().String(), "Date for the simulation, in YYYY-MM-DD format.")
}

func (c *esppCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s <symbol> is required")
		return subcommands.ExitUsageError
	}
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

	for _, g := range book.BySymbol(c.symbol) {
		plan, ok := g.(equity.ESPPPlan)
		if !ok {
			continue
		}
		result := plan.Simulate(on, snap.Rates(), snap.PriceOrZero(c.symbol))
		printMarkdown(renderer.ESPPMarkdown(result))
		return subcommands.ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "No ESPP plan found for symbol %q\n", c.symbol)
	return subcommands.ExitFailure
}
