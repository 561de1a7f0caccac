package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// addESPPCmd holds the flags for the 'add-espp' subcommand.
type addESPPCmd struct {
	symbol    string
	salary    float64
	currency  string
	income    float64
	discount  float64
	basePrice float64
	rate      float64
	from      string
	to        string
}

func (*addESPPCmd) Name() string     { return "add-espp" }
func (*addESPPCmd) Synopsis() string { return "record a new ESPP plan" }
func (*addESPPCmd) Usage() string {
	return `eqc add-espp -s <symbol> -salary <amount> -income <percent> -discount <percent> -base-price <price> -rate <rate> -from <date> -to <date> [-currency <code>]

  Appends an employee stock purchase plan to the grants file. The salary
  is monthly, in the home currency; the rate is the home-currency-per-USD
  fallback used when no dated rate is recorded.

Usage Examples:
# 10% of a 30000 ILS monthly salary, 15% discount on a $100 base price.
$ eqc add-espp -s ACME -salary 30000 -currency ILS -income 10 -discount 15 -base-price 100 -rate 3.65 -from 2023-01-01 -to 2024-12-31
`
}

func (c *addESPPCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol of the plan")
	f.Float64Var(&c.salary, "salary", 0, "Monthly base salary, in the home currency")
	f.StringVar(&c.currency, "currency", "ILS", "Home currency code of the salary")
	f.Float64Var(&c.income, "income", 0, "Income percentage withheld each month")
	f.Float64Var(&c.discount, "discount", 0, "Discount percentage on the base stock price")
	f.Float64Var(&c.basePrice, "base-price", 0, "Base stock price before discount, in USD")
	f.Float64Var(&c.rate, "rate", 0, "Default home-currency-per-USD conversion rate")
	f.StringVar(&c.from, "from", "", "Start of the buying period, in YYYY-MM-DD format")
	f.StringVar(&c.to, "to", "", "End of the buying period, in YYYY-MM-DD format")
}

func (c *addESPPCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := equity.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -from date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := equity.ParseDate(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -to date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return EncodeGrant(equity.ESPPPlan{
		Symbol:          c.symbol,
		BaseSalary:      equity.M(c.salary, c.currency),
		IncomePercent:   equity.Percent(c.income),
		DiscountPercent: equity.Percent(c.discount),
		BaseStockPrice:  equity.M(c.basePrice, equity.USD),
		Periods:         []equity.BuyingPeriod{{Start: start, End: end}},
		DefaultRate:     c.rate,
	})
}
