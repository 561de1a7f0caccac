package equity

import (
	"testing"
	"time"
)

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		from, to Date
		want     int
	}{
		{NewDate(2023, time.January, 1), NewDate(2023, time.January, 31), 0},
		{NewDate(2023, time.January, 31), NewDate(2023, time.February, 1), 1}, // day of month is ignored
		{NewDate(2023, time.January, 1), NewDate(2024, time.January, 1), 12},
		{NewDate(2023, time.June, 15), NewDate(2024, time.January, 2), 7},
		{NewDate(2024, time.March, 1), NewDate(2023, time.December, 1), -3},
	}
	for _, tc := range tests {
		if got := MonthsBetween(tc.from, tc.to); got != tc.want {
			t.Errorf("MonthsBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestAddMonthNormalizes(t *testing.T) {
	// month arithmetic lands on a real day
	d := NewDate(2024, time.January, 31).AddMonth(1)
	if d != NewDate(2024, time.March, 2) {
		t.Errorf("2024-01-31 + 1 month = %s, want the normalized 2024-03-02", d)
	}
	d = NewDate(2020, time.October, 15).AddMonth(6)
	if d != NewDate(2021, time.April, 15) {
		t.Errorf("2020-10-15 + 6 months = %s, want 2021-04-15", d)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-7-1")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != NewDate(2025, time.July, 1) {
		t.Errorf("ParseDate(2025-7-1) = %s, want 2025-07-01", d)
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate() accepted garbage")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != `"2024-02-29"` {
		t.Errorf("MarshalJSON() = %s, want \"2024-02-29\"", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
