package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// addOptionsCmd holds the flags for the 'add-options' subcommand.
type addOptionsCmd struct {
	symbol     string
	grantDate  string
	units      int
	years      int
	frequency  string
	cliff      int
	terminated string

	strike     float64
	exercise   float64
	expiration string
	optionType string

	valuation     float64
	valuationDate string
}

func (*addOptionsCmd) Name() string     { return "add-options" }
func (*addOptionsCmd) Synopsis() string { return "record a new stock options grant" }
func (*addOptionsCmd) Usage() string {
	return `eqc add-options -s <symbol> -units <n> -grant <date> -years <3|4> -freq <monthly|quarterly|annually> -strike <price> -type <ISO|NSO|ESO> [-cliff <months>] [-exercise <price>] [-expiration <date>] [-valuation <price> -valuation-date <date>] [-terminated <date>]

  Appends a stock options grant to the grants file. The strike price
  drives the intrinsic value; the optional company valuation is used as
  pricing fallback when no market price is recorded for the symbol.

Usage Examples:
# 800 ISO options over 4 years, monthly, strike $2.50.
$ eqc add-options -s ACME -units 800 -grant 2021-01-01 -years 4 -freq monthly -strike 2.50 -type ISO
`
}

func (c *addOptionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol of the grant")
	f.IntVar(&c.units, "units", 0, "Total number of options granted")
	f.StringVar(&c.grantDate, "grant", "", "Grant date, in YYYY-MM-DD format")
	f.IntVar(&c.years, "years", 4, "Vesting period in years (3 or 4)")
	f.StringVar(&c.frequency, "freq", "quarterly", "Vesting frequency: monthly, quarterly or annually")
	f.IntVar(&c.cliff, "cliff", 0, "Cliff in months, 0 for no cliff")
	f.StringVar(&c.terminated, "terminated", "", "Employment termination date, if any")
	f.Float64Var(&c.strike, "strike", 0, "Strike price per option, in USD")
	f.Float64Var(&c.exercise, "exercise", 0, "Exercise price per option, in USD (informational)")
	f.StringVar(&c.expiration, "expiration", "", "Expiration date of the options, if any")
	f.StringVar(&c.optionType, "type", "ISO", "Option type: ISO, NSO or ESO")
	f.Float64Var(&c.valuation, "valuation", 0, "Company per-share valuation, for symbols with no market price")
	f.StringVar(&c.valuationDate, "valuation-date", "", "Date of the company valuation")
}

func (c *addOptionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	policy, err := parsePolicy(c.grantDate, c.units, c.years, c.frequency, c.cliff, c.terminated)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	otype, err := equity.ParseOptionType(c.optionType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	g := equity.OptionsGrant{
		Symbol:      c.symbol,
		Vesting:     policy,
		StrikePrice: equity.M(c.strike, equity.USD),
		Type:        otype,
	}
	if c.exercise != 0 {
		g.ExercisePrice = equity.M(c.exercise, equity.USD)
	}
	if c.expiration != "" {
		g.Expiration, err = equity.ParseDate(c.expiration)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid expiration date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.valuation != 0 {
		g.CompanyValuation = equity.M(c.valuation, equity.USD)
		if c.valuationDate != "" {
			g.ValuationDate, err = equity.ParseDate(c.valuationDate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid valuation date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
	}

	return EncodeGrant(g)
}
