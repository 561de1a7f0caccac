package equity

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Frequency is the cadence of post-cliff vesting installments.
type Frequency int

const (
	Monthly Frequency = iota
	Quarterly
	Annually
)

// Months returns the number of months between two installments.
func (f Frequency) Months() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case Annually:
		return 12
	default:
		panic(fmt.Sprintf("unknown frequency %d", int(f)))
	}
}

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Annually:
		return "annually"
	default:
		return "periodic"
	}
}

// ParseFrequency parses a vesting frequency from its string form.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "annually", "annual", "yearly", "year":
		return Annually, nil
	default:
		return Monthly, configErrorf("unknown vesting frequency %q", s)
	}
}

// MarshalJSON writes the frequency as its string form.
func (f Frequency) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

// UnmarshalJSON reads the frequency from its string form.
func (f *Frequency) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseFrequency(s)
	if err != nil {
		return err
	}
	*f = p
	return nil
}

// CliffPolicy states whether an initial waiting period applies before any
// unit vests. The zero value is NoCliff.
type CliffPolicy struct {
	months int
}

// NoCliff returns the policy of a grant without a cliff.
func NoCliff() CliffPolicy { return CliffPolicy{} }

// CliffMonths returns the policy of a grant whose first n months are a cliff.
func CliffMonths(n int) CliffPolicy { return CliffPolicy{months: n} }

// Months returns the cliff duration and whether a cliff applies at all.
func (c CliffPolicy) Months() (int, bool) { return c.months, c.months != 0 }

// Termination states whether the grant holder has left the company. The zero
// value is Active.
type Termination struct {
	on Date
}

// Active returns the termination state of a grant still accruing.
func Active() Termination { return Termination{} }

// TerminatedOn returns the termination state of a holder who left on the given day.
func TerminatedOn(on Date) Termination { return Termination{on: on} }

// On returns the termination date and whether the grant is terminated.
func (t Termination) On() (Date, bool) { return t.on, !t.on.IsZero() }

// VestingPolicy is the static vesting definition shared by RSU and Options
// grants. It is handed to the engine as an immutable snapshot; Termination is
// the only field that can shrink an otherwise fixed schedule after the fact.
type VestingPolicy struct {
	GrantDate   Date
	TotalUnits  int
	Cliff       CliffPolicy
	PeriodYears int // supported vesting periods are 3 and 4 years
	Frequency   Frequency
	Termination Termination
}

// Validate rejects policies that would produce silently wrong schedules.
// All failures are ConfigurationError.
func (p VestingPolicy) Validate() error {
	if p.TotalUnits < 0 {
		return configErrorf("total units must be non-negative, got %d", p.TotalUnits)
	}
	if p.PeriodYears != 3 && p.PeriodYears != 4 {
		return configErrorf("vesting period must be 3 or 4 years, got %d", p.PeriodYears)
	}
	switch p.Frequency {
	case Monthly, Quarterly, Annually:
	default:
		return configErrorf("unknown vesting frequency %d", int(p.Frequency))
	}
	if months, ok := p.Cliff.Months(); ok {
		if months < 0 {
			return configErrorf("cliff duration must be non-negative, got %d months", months)
		}
		if months >= p.PeriodYears*12 {
			return configErrorf("cliff of %d months is not shorter than the %d-month vesting period", months, p.PeriodYears*12)
		}
	}
	return nil
}

// VestingEvent is a single installment of the schedule: on Date, Units vest.
// Units is always positive.
type VestingEvent struct {
	Date  Date
	Units int
}

// Schedule is the full, ordered list of vesting events of one policy,
// already truncated at the termination date if any. It is a pure function of
// the policy: querying it never mutates it.
type Schedule struct {
	events []VestingEvent
}

// Schedule generates the vesting schedule of the policy.
//
// Units are split evenly over the installments; the last installment absorbs
// the integer-division remainder so the schedule sums to TotalUnits exactly.
// Installments that would fire during the cliff window vest as a single
// catch-up lump at the cliff boundary. Events after the termination date are
// dropped with a hard cutoff, no partial period is pro-rated.
func (p VestingPolicy) Schedule() (Schedule, error) {
	if err := p.Validate(); err != nil {
		return Schedule{}, err
	}

	step := p.Frequency.Months()
	count := p.PeriodYears * 12 / step // divides evenly for 3y/4y × all three frequencies
	per := p.TotalUnits / count
	cliff, _ := p.Cliff.Months()

	events := make([]VestingEvent, 0, count)
	for k := 1; k <= count; k++ {
		units := per
		if k == count {
			units = p.TotalUnits - per*(count-1)
		}
		if units == 0 {
			continue
		}
		month := k * step
		if month < cliff {
			month = cliff // cliff catch-up: vest in a lump at the boundary
		}
		on := p.GrantDate.AddMonth(month)
		if n := len(events); n > 0 && events[n-1].Date == on {
			events[n-1].Units += units
		} else {
			events = append(events, VestingEvent{Date: on, Units: units})
		}
	}

	if end, terminated := p.Termination.On(); terminated {
		for i, e := range events {
			if e.Date.After(end) {
				events = events[:i]
				break
			}
		}
	}
	return Schedule{events: events}, nil
}

// Events returns a copy of the ordered vesting events.
func (s Schedule) Events() []VestingEvent { return slices.Clone(s.events) }

// TotalUnits returns the sum of units over all events of the schedule.
func (s Schedule) TotalUnits() int {
	total := 0
	for _, e := range s.events {
		total += e.Units
	}
	return total
}

// VestedUnits returns the number of units vested on or before 'on'.
func (s Schedule) VestedUnits(on Date) int {
	vested := 0
	for _, e := range s.events {
		if e.Date.After(on) {
			break
		}
		vested += e.Units
	}
	return vested
}

// UnvestedUnits returns the number of scheduled units still unvested after 'on'.
func (s Schedule) UnvestedUnits(on Date) int { return s.TotalUnits() - s.VestedUnits(on) }

// NextVest returns the first event strictly after 'on', or false if the
// schedule is exhausted or terminated.
func (s Schedule) NextVest(on Date) (VestingEvent, bool) {
	for _, e := range s.events {
		if e.Date.After(on) {
			return e, true
		}
	}
	return VestingEvent{}, false
}
