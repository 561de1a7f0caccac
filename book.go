package equity

import (
	"slices"
	"sort"
)

// Book is the ordered collection of grant records of one employee. It only
// groups records: all computations stay per-grant (see VestingPolicy,
// ESPPPlan) or fold over per-grant results (see Aggregate).
type Book struct {
	grants []Grant
}

// NewBook returns an empty book.
func NewBook() *Book { return &Book{} }

// Append adds grant records to the book.
func (b *Book) Append(grants ...Grant) { b.grants = append(b.grants, grants...) }

// Len returns the number of grant records.
func (b *Book) Len() int { return len(b.grants) }

// Grants returns a copy of all grant records in insertion order.
func (b *Book) Grants() []Grant { return slices.Clone(b.grants) }

// Symbols returns the sorted set of symbols present in the book.
func (b *Book) Symbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, g := range b.grants {
		if !seen[g.Ticker()] {
			seen[g.Ticker()] = true
			symbols = append(symbols, g.Ticker())
		}
	}
	sort.Strings(symbols)
	return symbols
}

// BySymbol returns all grant records of one symbol, in insertion order.
func (b *Book) BySymbol(symbol string) []Grant {
	var grants []Grant
	for _, g := range b.grants {
		if g.Ticker() == symbol {
			grants = append(grants, g)
		}
	}
	return grants
}

// Valuation rolls up all RSU and Options grants of one symbol into a single
// ValuationResult as of the snapshot date, using the snapshot quote. Options
// grants with no market quote fall back to their recorded company valuation.
// ESPP plans are excluded: they are reported by Simulate, not by unit vesting.
func (b *Book) Valuation(symbol string, snap *Snapshot) (ValuationResult, error) {
	price := snap.PriceOrZero(symbol)
	var results []ValuationResult
	for _, g := range b.BySymbol(symbol) {
		var (
			r   ValuationResult
			err error
		)
		switch grant := g.(type) {
		case RSUGrant:
			r, err = grant.Valuation(snap.On(), price)
		case OptionsGrant:
			r, err = grant.Valuation(snap.On(), grant.PricingValue(price))
		default:
			continue
		}
		if err != nil {
			return ValuationResult{}, err
		}
		results = append(results, r)
	}
	return Aggregate(results...), nil
}
