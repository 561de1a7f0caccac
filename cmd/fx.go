package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// fxCmd holds the flags for the 'fx' subcommand.
type fxCmd struct {
	currency string
	date     string
	rate     float64
}

func (*fxCmd) Name() string     { return "fx" }
func (*fxCmd) Synopsis() string { return "record a home-currency-per-USD conversion rate" }
func (*fxCmd) Usage() string {
	return `eqc fx -c <currency> [-d <date>] [-r <rate>]

  Appends a dated conversion rate to the market folder. Without -r the
  rate is fetched from the Frankfurter API (responses are cached for the
  day).

Usage Examples:
# Fetch today's ILS per USD rate.
$ eqc fx -c ILS

# Record a known historical rate.
$ eqc fx -c ILS -d 2023-07-01 -r 3.70
`
}

func (c *fxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "ILS", "Home currency code")
	f.StringVar(&c.date, "d", equity.Today().String(), "Date of the rate, in YYYY-MM-DD format")
	f.Float64Var(&c.rate, "r", 0, "Rate to record. Fetched from the Frankfurter API when omitted.")
}

func (c *fxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := equity.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	rate := c.rate
	if rate == 0 {
		rate, err = equity.FetchRate(equity.DailyClient(), c.currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s rate: %v\n", c.currency, err)
			return subcommands.ExitFailure
		}
	}
	if rate <= 0 {
		fmt.Fprintf(os.Stderr, "Error: rate must be positive, got %v\n", rate)
		return subcommands.ExitUsageError
	}

	err = appendMarket(ratesFile(), func(w *os.File) error {
		return equity.EncodeRate(w, on, rate)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording rate: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s per USD at %v on %s\n", c.currency, rate, on)
	return subcommands.ExitSuccess
}
