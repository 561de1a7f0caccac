package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// addRSUCmd holds the flags for the 'add-rsu' subcommand.
type addRSUCmd struct {
	symbol     string
	grantDate  string
	units      int
	years      int
	frequency  string
	cliff      int
	terminated string
}

func (*addRSUCmd) Name() string     { return "add-rsu" }
func (*addRSUCmd) Synopsis() string { return "record a new RSU grant" }
func (*addRSUCmd) Usage() string {
	return `eqc add-rsu -s <symbol> -units <n> -grant <date> -years <3|4> -freq <monthly|quarterly|annually> [-cliff <months>] [-terminated <date>]

  Appends a restricted stock unit grant to the grants file.

Usage Examples:
# 1200 units over 4 years, quarterly, with a 1-year cliff.
$ eqc add-rsu -s ACME -units 1200 -grant 2020-01-01 -years 4 -freq quarterly -cliff 12
`
}

func (c *addRSUCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol of the grant")
	f.IntVar(&c.units, "units", 0, "Total number of units granted")
	f.StringVar(&c.grantDate, "grant", "", "Grant date, in YYYY-MM-DD format")
	f.IntVar(&c.years, "years", 4, "Vesting period in years (3 or 4)")
	f.StringVar(&c.frequency, "freq", "quarterly", "Vesting frequency: monthly, quarterly or annually")
	f.IntVar(&c.cliff, "cliff", 0, "Cliff in months, 0 for no cliff")
	f.StringVar(&c.terminated, "terminated", "", "Employment termination date, if any")
}

func (c *addRSUCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	policy, err := parsePolicy(c.grantDate, c.units, c.years, c.frequency, c.cliff, c.terminated)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return EncodeGrant(equity.RSUGrant{
		Symbol:  c.symbol,
		Vesting: policy,
	})
}

// parsePolicy builds a vesting policy from the common add-* flags.
func parsePolicy(grantDate string, units, years int, frequency string, cliff int, terminated string) (equity.VestingPolicy, error) {
	var p equity.VestingPolicy

	on, err := equity.ParseDate(grantDate)
	if err != nil {
		return p, fmt.Errorf("invalid grant date: %w", err)
	}
	freq, err := equity.ParseFrequency(frequency)
	if err != nil {
		return p, err
	}

	p = equity.VestingPolicy{
		GrantDate:   on,
		TotalUnits:  units,
		PeriodYears: years,
		Frequency:   freq,
		Cliff:       equity.NoCliff(),
		Termination: equity.Active(),
	}
	if cliff > 0 {
		p.Cliff = equity.CliffMonths(cliff)
	}
	if terminated != "" {
		end, err := equity.ParseDate(terminated)
		if err != nil {
			return p, fmt.Errorf("invalid termination date: %w", err)
		}
		p.Termination = equity.TerminatedOn(end)
	}
	return p, nil
}
