package cmd

import (
	"testing"

	"github.com/etnz/equity"
)

func TestParsePolicy(t *testing.T) {
	p, err := parsePolicy("2020-01-01", 1200, 4, "quarterly", 12, "")
	if err != nil {
		t.Fatalf("parsePolicy returned an error: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("parsed policy is invalid: %v", err)
	}
	if p.GrantDate != equity.NewDate(2020, 1, 1) {
		t.Errorf("got grant date %s", p.GrantDate)
	}
	if months, ok := p.Cliff.Months(); !ok || months != 12 {
		t.Errorf("got cliff %v %v, want 12 months", months, ok)
	}
	if _, ok := p.Termination.On(); ok {
		t.Errorf("policy unexpectedly terminated")
	}
}

func TestParsePolicyTerminated(t *testing.T) {
	p, err := parsePolicy("2020-01-01", 600, 3, "monthly", 0, "2021-06-15")
	if err != nil {
		t.Fatalf("parsePolicy returned an error: %v", err)
	}
	end, ok := p.Termination.On()
	if !ok || end != equity.NewDate(2021, 6, 15) {
		t.Errorf("got termination %v %v, want 2021-06-15", end, ok)
	}
	if _, ok := p.Cliff.Months(); ok {
		t.Errorf("policy unexpectedly has a cliff")
	}
}

func TestParsePolicyErrors(t *testing.T) {
	cases := []struct {
		name      string
		grantDate string
		frequency string
		end       string
	}{
		{"bad grant date", "not-a-date", "monthly", ""},
		{"bad frequency", "2020-01-01", "weekly", ""},
		{"bad termination date", "2020-01-01", "monthly", "someday"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := parsePolicy(c.grantDate, 100, 4, c.frequency, 0, c.end); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
