package equity

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// testPlan returns the reference plan: 30000 ILS monthly salary, 10%
// contribution, 15% discount on a 100 USD reference price, 3.65 default rate,
// one 24-month buying period starting 2023-01-01.
func testPlan() ESPPPlan {
	return ESPPPlan{
		Symbol:          "ACME",
		BaseSalary:      M(30000, "ILS"),
		IncomePercent:   10,
		DiscountPercent: 15,
		BaseStockPrice:  M(100, USD),
		DefaultRate:     3.65,
		Periods: []BuyingPeriod{
			{Start: NewDate(2023, time.January, 1), End: NewDate(2024, time.December, 31)},
		},
	}
}

func cents(m Money) decimal.Decimal { return m.value.Round(2) }

func TestSimulateTwoPurchases(t *testing.T) {
	// 12 elapsed months: purchases at months 6 and 12, each converting
	// 18000 ILS at the default 3.65 rate into ≈4931.51 USD at 85 USD/share.
	plan := testPlan()
	on := NewDate(2024, time.January, 1)
	result := plan.Simulate(on, nil, M(100, USD))

	if result.MonthsElapsed != 12 {
		t.Errorf("months elapsed = %d, want 12", result.MonthsElapsed)
	}
	if result.MonthsRemaining != 11 {
		t.Errorf("months remaining = %d, want 11", result.MonthsRemaining)
	}
	if len(result.Purchases) != 2 {
		t.Fatalf("got %d purchases, want 2", len(result.Purchases))
	}

	wantDates := []Date{NewDate(2023, time.July, 1), NewDate(2024, time.January, 1)}
	wantContribution := decimal.RequireFromString("4931.51") // 18000 / 3.65
	for i, p := range result.Purchases {
		if p.Date != wantDates[i] {
			t.Errorf("purchase %d on %s, want %s", i, p.Date, wantDates[i])
		}
		if !cents(p.Contribution).Equal(wantContribution) {
			t.Errorf("purchase %d contribution = %s, want 4931.51", i, cents(p.Contribution))
		}
		if !p.Price.Equal(M(85, USD)) {
			t.Errorf("purchase %d price = %s, want $85.00", i, p.Price)
		}
		if p.Shares.IsZero() || p.Shares.IsNegative() {
			t.Errorf("purchase %d shares = %s, want positive", i, p.Shares)
		}
	}
}

func TestSimulateGainLoss(t *testing.T) {
	// Purchased at 85, now trading at 110: gain of 110/85−1 ≈ +29.41% per purchase.
	plan := testPlan()
	result := plan.Simulate(NewDate(2024, time.January, 1), nil, M(110, USD))

	wantPct := Percent((110.0/85.0 - 1) * 100)
	for i, p := range result.Purchases {
		if !p.GainLoss.IsPositive() {
			t.Errorf("purchase %d gain = %s, want positive", i, p.GainLoss)
		}
		if !p.GainLossPercent.Equal(wantPct) {
			t.Errorf("purchase %d gain%% = %s, want %s", i, p.GainLossPercent, wantPct)
		}
		if want := p.Shares.Mul(Q(110)); !p.Value.value.Equal(want.value) {
			t.Errorf("purchase %d value = %s, want shares×price", i, p.Value)
		}
	}
	if !result.TotalGainLossPercent.Equal(wantPct) {
		t.Errorf("total gain%% = %s, want %s", result.TotalGainLossPercent, wantPct)
	}
}

func TestSimulateZeroPriceGuard(t *testing.T) {
	// A zero reference price zeroes the discounted price: share counts
	// short-circuit to zero instead of dividing by zero.
	plan := testPlan()
	plan.BaseStockPrice = M(0, USD)
	result := plan.Simulate(NewDate(2024, time.January, 1), nil, M(100, USD))

	if len(result.Purchases) != 2 {
		t.Fatalf("got %d purchases, want 2", len(result.Purchases))
	}
	for i, p := range result.Purchases {
		if !p.Shares.IsZero() {
			t.Errorf("purchase %d shares = %s, want 0", i, p.Shares)
		}
		if !p.Value.IsZero() {
			t.Errorf("purchase %d value = %s, want 0", i, p.Value)
		}
	}
	if !result.TotalShares.IsZero() {
		t.Errorf("total shares = %s, want 0", result.TotalShares)
	}
}

func TestSimulateMissingPrice(t *testing.T) {
	// A missing current price values everything at zero but must not fail.
	plan := testPlan()
	result := plan.Simulate(NewDate(2024, time.January, 1), nil, M(0, USD))
	for i, p := range result.Purchases {
		if !p.Value.IsZero() {
			t.Errorf("purchase %d value = %s, want 0", i, p.Value)
		}
		if !p.GainLoss.Equal(p.Contribution.Neg()) {
			t.Errorf("purchase %d gain = %s, want −contribution", i, p.GainLoss)
		}
	}
}

func TestSimulateNoMatchingPeriod(t *testing.T) {
	plan := testPlan()
	result := plan.Simulate(NewDate(2022, time.June, 1), nil, M(100, USD))

	if result.MonthsElapsed != 0 || result.MonthsRemaining != 0 {
		t.Errorf("months = %d/%d, want 0/0 outside any buying period",
			result.MonthsElapsed, result.MonthsRemaining)
	}
	if len(result.Purchases) != 0 {
		t.Errorf("got %d purchases, want none", len(result.Purchases))
	}
	if !result.Pending.IsZero() {
		t.Errorf("pending = %s, want 0", result.Pending)
	}
}

func TestSimulateDatedRateLookup(t *testing.T) {
	// The first purchase date has a recorded rate, the second falls back to
	// the plan default.
	plan := testPlan()
	var rates History[float64]
	rates.Append(NewDate(2023, time.July, 1), 4.0)

	result := plan.Simulate(NewDate(2024, time.January, 1), &rates, M(100, USD))
	if len(result.Purchases) != 2 {
		t.Fatalf("got %d purchases, want 2", len(result.Purchases))
	}
	if want := decimal.RequireFromString("4500"); !cents(result.Purchases[0].Contribution).Equal(want) {
		t.Errorf("purchase 0 contribution = %s, want 4500 (18000 at 4.0)", cents(result.Purchases[0].Contribution))
	}
	if want := decimal.RequireFromString("4931.51"); !cents(result.Purchases[1].Contribution).Equal(want) {
		t.Errorf("purchase 1 contribution = %s, want 4931.51 (18000 at default 3.65)", cents(result.Purchases[1].Contribution))
	}
}

func TestSimulatePendingContribution(t *testing.T) {
	// 8 elapsed months: one purchase at month 6 and 2 months of pending
	// contribution, converted at the last purchase-date rate.
	plan := testPlan()
	var rates History[float64]
	rates.Append(NewDate(2023, time.July, 1), 4.0)

	result := plan.Simulate(NewDate(2023, time.September, 15), &rates, M(100, USD))
	if len(result.Purchases) != 1 {
		t.Fatalf("got %d purchases, want 1", len(result.Purchases))
	}
	// 3000 ILS × 2 months at 4.0
	if want := decimal.RequireFromString("1500"); !cents(result.Pending).Equal(want) {
		t.Errorf("pending = %s, want 1500", cents(result.Pending))
	}
	// pending is informational: share totals only sum executed purchases
	if !result.TotalShares.Equal(result.Purchases[0].Shares) {
		t.Errorf("total shares = %s, want the single purchase's %s",
			result.TotalShares, result.Purchases[0].Shares)
	}
}

func TestSimulateSumConsistency(t *testing.T) {
	plan := testPlan()
	var rates History[float64]
	rates.Append(NewDate(2023, time.July, 1), 3.4)
	rates.Append(NewDate(2024, time.January, 1), 3.8)

	result := plan.Simulate(NewDate(2024, time.August, 20), &rates, M(92.5, USD))

	shares, contribution := Q(0), M(0, USD)
	value, gain := M(0, USD), M(0, USD)
	for _, p := range result.Purchases {
		shares = shares.Add(p.Shares)
		contribution = contribution.Add(p.Contribution)
		value = value.Add(p.Value)
		gain = gain.Add(p.GainLoss)
	}
	if !result.TotalShares.Equal(shares) {
		t.Errorf("total shares = %s, sum of purchases = %s", result.TotalShares, shares)
	}
	if !result.TotalContribution.Equal(contribution) {
		t.Errorf("total contribution = %s, sum of purchases = %s", result.TotalContribution, contribution)
	}
	if !result.TotalValue.Equal(value) {
		t.Errorf("total value = %s, sum of purchases = %s", result.TotalValue, value)
	}
	if !result.TotalGainLoss.Equal(gain) {
		t.Errorf("total gain = %s, sum of purchases = %s", result.TotalGainLoss, gain)
	}
}

func TestSimulateIdempotent(t *testing.T) {
	plan := testPlan()
	var rates History[float64]
	rates.Append(NewDate(2023, time.July, 1), 3.52)

	on := NewDate(2024, time.March, 3)
	a := plan.Simulate(on, &rates, M(101.25, USD))
	b := plan.Simulate(on, &rates, M(101.25, USD))
	if !reflect.DeepEqual(a, b) {
		t.Error("two simulations of identical inputs differ")
	}
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ESPPPlan)
	}{
		{"no symbol", func(p *ESPPPlan) { p.Symbol = "" }},
		{"income above 100", func(p *ESPPPlan) { p.IncomePercent = 101 }},
		{"negative income", func(p *ESPPPlan) { p.IncomePercent = -1 }},
		{"discount above 100", func(p *ESPPPlan) { p.DiscountPercent = 130 }},
		{"zero default rate", func(p *ESPPPlan) { p.DefaultRate = 0 }},
		{"negative default rate", func(p *ESPPPlan) { p.DefaultRate = -3.65 }},
		{"inverted period", func(p *ESPPPlan) {
			p.Periods = []BuyingPeriod{{Start: NewDate(2024, 1, 1), End: NewDate(2023, 1, 1)}}
		}},
		{"overlapping periods", func(p *ESPPPlan) {
			p.Periods = []BuyingPeriod{
				{Start: NewDate(2023, 1, 1), End: NewDate(2024, 1, 1)},
				{Start: NewDate(2023, 6, 1), End: NewDate(2024, 6, 1)},
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan := testPlan()
			tc.mutate(&plan)
			err := plan.Validate()
			if err == nil {
				t.Fatal("Validate() accepted an invalid plan")
			}
			if !IsConfigurationError(err) {
				t.Errorf("Validate() error = %v, want a ConfigurationError", err)
			}
		})
	}
	if err := testPlan().Validate(); err != nil {
		t.Errorf("Validate() rejected a valid plan: %v", err)
	}
}

func TestDiscountedPrice(t *testing.T) {
	plan := testPlan()
	if got := plan.DiscountedPrice(); !got.Equal(M(85, USD)) {
		t.Errorf("discounted price = %s, want $85.00", got)
	}
	plan.DiscountPercent = 0
	if got := plan.DiscountedPrice(); !got.Equal(M(100, USD)) {
		t.Errorf("undiscounted price = %s, want $100.00", got)
	}
}

func TestGainPercentGuard(t *testing.T) {
	if got := gainPercent(M(10, USD), M(0, USD)); got != 0 {
		t.Errorf("gain%% with zero contribution = %v, want 0", got)
	}
	got := gainPercent(M(25, USD), M(100, USD))
	if math.Abs(float64(got)-25) > 1e-9 {
		t.Errorf("gainPercent(25, 100) = %v, want 25", got)
	}
}
