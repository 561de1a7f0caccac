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

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	symbol string
	date   string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the vesting schedule of a symbol" }
func (*scheduleCmd) Usage() string {
	return `eqc schedule -s <symbol> [-d <date>]

  Displays every vesting date of the symbol's grants with the units
  vesting on it, and which of them have already vested.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol of the grant.")
	f.StringVar(&c.date, "d", equity.Today().String(), "Date for the schedule, in YYYY-MM-DD format.")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rendered := false
	for _, g := range book.BySymbol(c.symbol) {
		var policy equity.VestingPolicy
		switch grant := g.(type) {
		case equity.RSUGrant:
			policy = grant.Vesting
		case equity.OptionsGrant:
			policy = grant.Vesting
		default:
			continue
		}
		sched, err := policy.Schedule()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing schedule for %q: %v\n", c.symbol, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.ScheduleMarkdown(c.symbol, on, sched))
		rendered = true
	}

	if !rendered {
		fmt.Fprintf(os.Stderr, "No vesting grant found for symbol %q\n", c.symbol)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
