package equity

// Snapshot is a point-in-time view of the market inputs the engine consumes:
// a current price per symbol and the dated home-currency-per-USD rate series.
// It is assembled by the caller (CLI, dashboard); the engine only reads it.
type Snapshot struct {
	on     Date
	prices map[string]Money
	rates  History[float64]
}

// NewSnapshot returns an empty snapshot referenced at 'on'.
func NewSnapshot(on Date) *Snapshot {
	return &Snapshot{on: on, prices: make(map[string]Money)}
}

// On returns the reference date of the snapshot.
func (s *Snapshot) On() Date { return s.on }

// SetPrice records the current price of a symbol.
func (s *Snapshot) SetPrice(symbol string, price Money) { s.prices[symbol] = price }

// Price returns the current price of a symbol, or false when no quote is known.
func (s *Snapshot) Price(symbol string) (Money, bool) {
	p, ok := s.prices[symbol]
	return p, ok
}

// PriceOrZero returns the current price of a symbol, or a zero USD amount.
// A missing quote degrades the valuation to zero, it never aborts it.
func (s *Snapshot) PriceOrZero(symbol string) Money {
	if p, ok := s.prices[symbol]; ok {
		return p
	}
	return M(0, USD)
}

// RecordRate records the home-currency-per-USD rate observed on a given day.
func (s *Snapshot) RecordRate(on Date, rate float64) { s.rates.Append(on, rate) }

// Rates returns the dated FX rate series for the ESPP simulator.
func (s *Snapshot) Rates() *History[float64] { return &s.rates }

// RateAsOf returns the most recent rate recorded on or before 'on'.
func (s *Snapshot) RateAsOf(on Date) (float64, bool) { return s.rates.ValueAsOf(on) }
