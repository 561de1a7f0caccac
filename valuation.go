package equity

// ValuationResult is the vested/unvested split and valuation of one grant as
// of a date, or the roll-up of several grants sharing a symbol.
type ValuationResult struct {
	Symbol        string
	On            Date
	VestedUnits   int
	UnvestedUnits int
	VestedValue   Money
	UnvestedValue Money
	NextVestDate  Date // zero when the schedule is exhausted or terminated
	NextVestUnits int
}

// newValuation values a schedule at a per-unit price as of 'on'.
func newValuation(symbol string, on Date, s Schedule, perUnit Money) ValuationResult {
	vested, unvested := s.VestedUnits(on), s.UnvestedUnits(on)
	result := ValuationResult{
		Symbol:        symbol,
		On:            on,
		VestedUnits:   vested,
		UnvestedUnits: unvested,
		VestedValue:   perUnit.Mul(Q(vested)),
		UnvestedValue: perUnit.Mul(Q(unvested)),
	}
	if next, ok := s.NextVest(on); ok {
		result.NextVestDate = next.Date
		result.NextVestUnits = next.Units
	}
	return result
}

// Aggregate folds several per-grant valuations of the same symbol into one:
// unit counts and values are summed, the next vest date is the earliest one,
// and grants that vest on that same earliest day sum their next units.
//
// The input is expected to be already grouped by symbol (see Book.BySymbol);
// the fold keeps the symbol and reference date of the first result.
func Aggregate(results ...ValuationResult) ValuationResult {
	var total ValuationResult
	for i, r := range results {
		if i == 0 {
			total = r
			continue
		}
		total.VestedUnits += r.VestedUnits
		total.UnvestedUnits += r.UnvestedUnits
		total.VestedValue = total.VestedValue.Add(r.VestedValue)
		total.UnvestedValue = total.UnvestedValue.Add(r.UnvestedValue)
		switch {
		case r.NextVestDate.IsZero():
			// exhausted schedule, nothing upcoming to merge
		case total.NextVestDate.IsZero() || r.NextVestDate.Before(total.NextVestDate):
			total.NextVestDate, total.NextVestUnits = r.NextVestDate, r.NextVestUnits
		case r.NextVestDate == total.NextVestDate:
			total.NextVestUnits += r.NextVestUnits
		}
	}
	return total
}

// TotalValue returns the combined vested and unvested value.
func (v ValuationResult) TotalValue() Money { return v.VestedValue.Add(v.UnvestedValue) }

// TotalUnits returns the combined vested and unvested unit count.
func (v ValuationResult) TotalUnits() int { return v.VestedUnits + v.UnvestedUnits }
