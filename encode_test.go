package equity

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestGrantsRoundTrip(t *testing.T) {
	book := NewBook()
	book.Append(
		RSUGrant{Symbol: "ACME", Vesting: VestingPolicy{
			GrantDate:   NewDate(2020, time.January, 1),
			TotalUnits:  1200,
			PeriodYears: 4,
			Frequency:   Quarterly,
			Cliff:       CliffMonths(12),
		}},
		OptionsGrant{
			Symbol: "ACME",
			Vesting: VestingPolicy{
				GrantDate:   NewDate(2021, time.March, 15),
				TotalUnits:  1600,
				PeriodYears: 4,
				Frequency:   Monthly,
				Termination: TerminatedOn(NewDate(2023, time.June, 30)),
			},
			Type:          ISO,
			StrikePrice:   M(8.5, USD),
			ExercisePrice: M(8.5, USD),
			Expiration:    NewDate(2031, time.March, 15),
		},
		ESPPPlan{
			Symbol:          "ACME",
			BaseSalary:      M(30000, "ILS"),
			IncomePercent:   10,
			DiscountPercent: 15,
			BaseStockPrice:  M(100, USD),
			DefaultRate:     3.65,
			Periods: []BuyingPeriod{
				{Start: NewDate(2023, time.January, 1), End: NewDate(2024, time.December, 31)},
			},
		},
	)

	var buf bytes.Buffer
	if err := EncodeGrants(&buf, book); err != nil {
		t.Fatalf("EncodeGrants() error = %v", err)
	}

	decoded, err := DecodeGrants(&buf)
	if err != nil {
		t.Fatalf("DecodeGrants() error = %v", err)
	}
	if decoded.Len() != 3 {
		t.Fatalf("decoded %d grants, want 3", decoded.Len())
	}

	rsu, ok := decoded.Grants()[0].(RSUGrant)
	if !ok {
		t.Fatalf("grant 0 is %T, want RSUGrant", decoded.Grants()[0])
	}
	if months, hasCliff := rsu.Vesting.Cliff.Months(); !hasCliff || months != 12 {
		t.Errorf("decoded cliff = %d/%v, want 12 months", months, hasCliff)
	}

	opt, ok := decoded.Grants()[1].(OptionsGrant)
	if !ok {
		t.Fatalf("grant 1 is %T, want OptionsGrant", decoded.Grants()[1])
	}
	if on, terminated := opt.Vesting.Termination.On(); !terminated || on != NewDate(2023, time.June, 30) {
		t.Errorf("decoded termination = %s/%v, want 2023-06-30", on, terminated)
	}
	if !opt.StrikePrice.Equal(M(8.5, USD)) {
		t.Errorf("decoded strike = %s, want $8.50", opt.StrikePrice)
	}

	plan, ok := decoded.Grants()[2].(ESPPPlan)
	if !ok {
		t.Fatalf("grant 2 is %T, want ESPPPlan", decoded.Grants()[2])
	}
	if plan.DefaultRate != 3.65 {
		t.Errorf("decoded default rate = %g, want 3.65", plan.DefaultRate)
	}
	if len(plan.Periods) != 1 || plan.Periods[0].Start != NewDate(2023, time.January, 1) {
		t.Errorf("decoded periods = %+v", plan.Periods)
	}
	if plan.BaseSalary.Currency() != "ILS" {
		t.Errorf("decoded salary currency = %q, want ILS", plan.BaseSalary.Currency())
	}
}

func TestDecodeGrantsRejectsUnknownKind(t *testing.T) {
	_, err := DecodeGrants(strings.NewReader(`{"kind":"warrant","symbol":"ACME"}` + "\n"))
	if err == nil {
		t.Fatal("DecodeGrants() accepted an unknown kind")
	}
}

func TestDecodeGrantsRejectsInvalidPolicy(t *testing.T) {
	line := `{"kind":"rsu","symbol":"ACME","grant_date":"2020-01-01","total_units":1200,"period_years":7,"frequency":"quarterly"}`
	_, err := DecodeGrants(strings.NewReader(line + "\n"))
	if err == nil {
		t.Fatal("DecodeGrants() accepted an unsupported vesting period")
	}
	if !IsConfigurationError(err) {
		t.Errorf("DecodeGrants() error = %v, want to wrap a ConfigurationError", err)
	}
}

func TestDecodeGrantsSkipsEmptyLines(t *testing.T) {
	line := `{"kind":"rsu","symbol":"ACME","grant_date":"2020-01-01","total_units":1200,"period_years":4,"frequency":"quarterly"}`
	book, err := DecodeGrants(strings.NewReader("\n" + line + "\n\n"))
	if err != nil {
		t.Fatalf("DecodeGrants() error = %v", err)
	}
	if book.Len() != 1 {
		t.Errorf("decoded %d grants, want 1", book.Len())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	var prices, rates bytes.Buffer
	if err := EncodePrice(&prices, "ACME", M(101.25, USD)); err != nil {
		t.Fatalf("EncodePrice() error = %v", err)
	}
	if err := EncodeRate(&rates, NewDate(2023, time.July, 1), 3.52); err != nil {
		t.Fatalf("EncodeRate() error = %v", err)
	}

	on := NewDate(2024, time.January, 2)
	snap, err := DecodeSnapshot(on, &prices, &rates)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if price, ok := snap.Price("ACME"); !ok || !price.Equal(M(101.25, USD)) {
		t.Errorf("decoded price = %s/%v, want $101.25", price, ok)
	}
	if rate, ok := snap.Rates().Get(NewDate(2023, time.July, 1)); !ok || rate != 3.52 {
		t.Errorf("decoded rate = %g/%v, want 3.52", rate, ok)
	}
	if _, ok := snap.Price("MISSING"); ok {
		t.Error("snapshot invented a price for an unknown symbol")
	}
	if !snap.PriceOrZero("MISSING").IsZero() {
		t.Error("PriceOrZero for an unknown symbol is not zero")
	}
}
