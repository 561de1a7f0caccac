package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// priceCmd holds the flags for the 'price' subcommand.
type priceCmd struct {
	symbol   string
	price    float64
	currency string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record the current stock price of a symbol" }
func (*priceCmd) Usage() string {
	return `eqc price -s <symbol> -p <price> [-c <currency>]

  Appends the current price of the symbol to the market folder. The most
  recent line for a symbol wins.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.currency, "c", equity.USD, "Currency of the price")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.price <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -s <symbol> and a positive -p <price> are required")
		return subcommands.ExitUsageError
	}

	err := appendMarket(pricesFile(), func(w *os.File) error {
		return equity.EncodePrice(w, c.symbol, equity.M(c.price, c.currency))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording price: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s at %s\n", c.symbol, equity.M(c.price, c.currency))
	return subcommands.ExitSuccess
}
