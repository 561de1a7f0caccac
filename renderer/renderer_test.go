package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/equity"
)

func TestScheduleMarkdown(t *testing.T) {
	policy := equity.VestingPolicy{
		GrantDate:   equity.NewDate(2020, time.January, 1),
		TotalUnits:  1200,
		PeriodYears: 4,
		Frequency:   equity.Quarterly,
	}
	s, err := policy.Schedule()
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	got := ScheduleMarkdown("ACME", equity.NewDate(2022, time.January, 1), s)
	for _, want := range []string{
		"Vesting Schedule for ACME",
		"600 vested, 600 unvested of 1200 total units",
		"2020-04-01",
		"2024-01-01",
		"Next vest: 75 units on 2022-04-01.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report is missing %q:\n%s", want, got)
		}
	}
}

func TestScheduleMarkdownExhausted(t *testing.T) {
	policy := equity.VestingPolicy{
		GrantDate:   equity.NewDate(2020, time.January, 1),
		TotalUnits:  120,
		PeriodYears: 3,
		Frequency:   equity.Annually,
	}
	s, err := policy.Schedule()
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	got := ScheduleMarkdown("ACME", equity.NewDate(2030, time.January, 1), s)
	if !strings.Contains(got, "No upcoming vest") {
		t.Errorf("report is missing the exhausted-schedule note:\n%s", got)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	on := equity.NewDate(2022, time.January, 1)
	results := []equity.ValuationResult{{
		Symbol:        "ACME",
		On:            on,
		VestedUnits:   600,
		UnvestedUnits: 600,
		VestedValue:   equity.M(6000, equity.USD),
		UnvestedValue: equity.M(6000, equity.USD),
		NextVestDate:  equity.NewDate(2022, time.April, 1),
		NextVestUnits: 75,
	}}

	got := SummaryMarkdown(on, results)
	for _, want := range []string{
		"Equity Summary on 2022-01-01",
		"ACME",
		"$6,000.00",
		"75 on 2022-04-01",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary is missing %q:\n%s", want, got)
		}
	}
}

func TestESPPMarkdown(t *testing.T) {
	plan := equity.ESPPPlan{
		Symbol:          "ACME",
		BaseSalary:      equity.M(30000, "ILS"),
		IncomePercent:   10,
		DiscountPercent: 15,
		BaseStockPrice:  equity.M(100, equity.USD),
		DefaultRate:     3.65,
		Periods: []equity.BuyingPeriod{
			{Start: equity.NewDate(2023, time.January, 1), End: equity.NewDate(2024, time.December, 31)},
		},
	}
	result := plan.Simulate(equity.NewDate(2024, time.January, 1), nil, equity.M(100, equity.USD))

	got := ESPPMarkdown(result)
	for _, want := range []string{
		"ESPP Report for ACME on 2024-01-01",
		"12 months elapsed, 11 remaining",
		"2023-07-01",
		"$85.00",
		"Totals",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report is missing %q:\n%s", want, got)
		}
	}
}
