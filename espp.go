package equity

// PurchaseCycleMonths is the number of contribution months between two ESPP
// purchase dates.
const PurchaseCycleMonths = 6

// USD is the valuation currency of all share-purchase math.
const USD = "USD"

// BuyingPeriod is a plan-defined window during which payroll contributions
// accumulate toward scheduled purchases.
type BuyingPeriod struct {
	Start Date
	End   Date
}

// Contains reports whether 'on' falls inside the window, boundaries included.
func (p BuyingPeriod) Contains(on Date) bool { return !on.Before(p.Start) && !on.After(p.End) }

// ESPPPlan is an employee stock purchase plan participation record.
//
// BaseSalary is the monthly salary in the employee's home currency;
// DefaultRate is the plan's home-currency-per-USD fallback rate, used only
// for purchase dates with no recorded rate. It is an explicit, required
// field: there is no baked-in default.
type ESPPPlan struct {
	Symbol          string
	BaseSalary      Money // monthly, home currency
	IncomePercent   Percent
	DiscountPercent Percent
	BaseStockPrice  Money // plan reference price before discount, USD
	Periods         []BuyingPeriod
	DefaultRate     float64 // home currency per USD
}

func (p ESPPPlan) Kind() GrantKind { return KindESPP }
func (p ESPPPlan) Ticker() string  { return p.Symbol }

// Validate rejects malformed plans with a ConfigurationError.
func (p ESPPPlan) Validate() error {
	if p.Symbol == "" {
		return configErrorf("espp plan has no symbol")
	}
	if p.IncomePercent < 0 || p.IncomePercent > 100 {
		return configErrorf("income percentage must be within [0,100], got %s", p.IncomePercent)
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return configErrorf("stock discount percentage must be within [0,100], got %s", p.DiscountPercent)
	}
	if p.DefaultRate <= 0 {
		return configErrorf("default home-currency-per-USD rate must be positive, got %g", p.DefaultRate)
	}
	for i, w := range p.Periods {
		if w.End.Before(w.Start) {
			return configErrorf("buying period %s..%s ends before it starts", w.Start, w.End)
		}
		if i > 0 && !p.Periods[i-1].End.Before(w.Start) {
			return configErrorf("buying periods %s..%s and %s..%s overlap",
				p.Periods[i-1].Start, p.Periods[i-1].End, w.Start, w.End)
		}
	}
	return nil
}

// DiscountedPrice returns the plan purchase price: the reference price after
// the plan discount.
func (p ESPPPlan) DiscountedPrice() Money {
	factor := newDecimal(1 - p.DiscountPercent.Factor())
	return M(p.BaseStockPrice.value.Mul(factor), cur(p.BaseStockPrice, M(0, USD)))
}

// MonthlyContribution returns the payroll deduction per month, home currency.
func (p ESPPPlan) MonthlyContribution() Money {
	return M(p.BaseSalary.value.Mul(newDecimal(p.IncomePercent.Factor())), p.BaseSalary.Currency())
}

// ESPPPurchase is one executed purchase of the plan.
type ESPPPurchase struct {
	Date            Date
	Contribution    Money // USD, converted at the purchase-date FX rate
	Shares          Quantity
	Price           Money // discounted purchase price, USD
	Value           Money // shares at the current price, USD
	GainLoss        Money
	GainLossPercent Percent
}

// ESPPResult is the outcome of simulating a plan as of a date: the executed
// purchases, the pending not-yet-purchased contribution, and plan progress.
// Totals are exact sums over the purchase list, never recomputed separately.
type ESPPResult struct {
	Symbol          string
	On              Date
	MonthsElapsed   int
	MonthsRemaining int

	Purchases []ESPPPurchase

	// Pending is the contribution accumulated since the last purchase,
	// converted at the most recent known purchase-date rate (or the plan
	// default). It is informational only and never added to share totals.
	Pending Money

	TotalShares          Quantity
	TotalContribution    Money
	TotalValue           Money
	TotalGainLoss        Money
	TotalGainLossPercent Percent
}

// Simulate computes the purchase history and plan progress as of 'on'.
//
// rates maps specific calendar dates to the home-currency-per-USD rate; a
// purchase date missing from it falls back to the plan's DefaultRate. A zero
// current price values every purchase at zero rather than failing, and a
// zero discounted price short-circuits all share counts to zero. The
// function is pure: identical inputs always produce identical results.
func (p ESPPPlan) Simulate(on Date, rates *History[float64], price Money) ESPPResult {
	result := ESPPResult{
		Symbol:            p.Symbol,
		On:                on,
		Pending:           M(0, USD),
		TotalContribution: M(0, USD),
		TotalValue:        M(0, USD),
		TotalGainLoss:     M(0, USD),
	}

	window, ok := p.periodContaining(on)
	if !ok {
		// No matching buying period is a normal, representable state.
		return result
	}
	result.MonthsElapsed = MonthsBetween(window.Start, on)
	result.MonthsRemaining = MonthsBetween(on, window.End)

	monthly := p.MonthlyContribution()
	discounted := p.DiscountedPrice()

	lastRate := p.DefaultRate
	for boundary := PurchaseCycleMonths; boundary <= result.MonthsElapsed; boundary += PurchaseCycleMonths {
		day := window.Start.AddMonth(boundary)
		rate := p.DefaultRate
		if rates != nil {
			if r, found := rates.Get(day); found && r > 0 {
				rate = r
			}
		}
		lastRate = rate

		contribution := toUSD(monthly.Mul(Q(PurchaseCycleMonths)), rate)
		shares := Q(0)
		if discounted.IsPositive() {
			shares = contribution.DivPrice(discounted)
		}
		value := price.Mul(shares)
		gain := value.Sub(contribution)

		result.Purchases = append(result.Purchases, ESPPPurchase{
			Date:            day,
			Contribution:    contribution,
			Shares:          shares,
			Price:           discounted,
			Value:           value,
			GainLoss:        gain,
			GainLossPercent: gainPercent(gain, contribution),
		})

		result.TotalShares = result.TotalShares.Add(shares)
		result.TotalContribution = result.TotalContribution.Add(contribution)
		result.TotalValue = result.TotalValue.Add(value)
		result.TotalGainLoss = result.TotalGainLoss.Add(gain)
	}

	pendingMonths := result.MonthsElapsed % PurchaseCycleMonths
	result.Pending = toUSD(monthly.Mul(Q(pendingMonths)), lastRate)
	result.TotalGainLossPercent = gainPercent(result.TotalGainLoss, result.TotalContribution)
	return result
}

// periodContaining selects the single buying period whose window contains 'on'.
func (p ESPPPlan) periodContaining(on Date) (BuyingPeriod, bool) {
	for _, w := range p.Periods {
		if w.Contains(on) {
			return w, true
		}
	}
	return BuyingPeriod{}, false
}

// toUSD converts a home-currency amount at the given home-per-USD rate.
// A non-positive rate yields zero, the missing-market-data fallback.
func toUSD(home Money, rate float64) Money {
	if rate <= 0 {
		return M(0, USD)
	}
	return M(home.value.Div(newDecimal(rate)), USD)
}

// gainPercent returns gain/contribution expressed in percent, 0 when the
// contribution is zero (division-by-zero guard, not an error).
func gainPercent(gain, contribution Money) Percent {
	if contribution.IsZero() {
		return 0
	}
	return Percent(gain.value.Div(contribution.value).InexactFloat64() * 100)
}
