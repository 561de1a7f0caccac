package equity

import (
	"strings"
)

// GrantKind discriminates the grant records of a book.
type GrantKind string

const (
	KindRSU     GrantKind = "rsu"
	KindOptions GrantKind = "options"
	KindESPP    GrantKind = "espp"
)

// Grant is the common interface of all equity compensation records.
type Grant interface {
	Kind() GrantKind
	Ticker() string
	Validate() error
}

// RSUGrant is a restricted stock unit grant: a vesting policy on a symbol.
type RSUGrant struct {
	Symbol  string
	Vesting VestingPolicy
}

func (g RSUGrant) Kind() GrantKind { return KindRSU }
func (g RSUGrant) Ticker() string  { return g.Symbol }

func (g RSUGrant) Validate() error {
	if g.Symbol == "" {
		return configErrorf("rsu grant has no symbol")
	}
	return g.Vesting.Validate()
}

// Valuation computes the vested/unvested split of the grant as of 'on',
// valued at the given per-unit market price.
func (g RSUGrant) Valuation(on Date, price Money) (ValuationResult, error) {
	sched, err := g.Vesting.Schedule()
	if err != nil {
		return ValuationResult{}, err
	}
	return newValuation(g.Symbol, on, sched, price), nil
}

// OptionType is the tax flavor of a stock option grant.
type OptionType string

const (
	ISO OptionType = "ISO" // incentive stock option
	NSO OptionType = "NSO" // non-qualified stock option
	ESO OptionType = "ESO" // employee stock option
)

// ParseOptionType parses an option type from its string form.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(strings.ToUpper(strings.TrimSpace(s))) {
	case ISO:
		return ISO, nil
	case NSO:
		return NSO, nil
	case ESO:
		return ESO, nil
	default:
		return "", configErrorf("unknown option type %q", s)
	}
}

// OptionsGrant is a stock option grant: the same unit-vesting timeline as an
// RSU, plus exercise economics derived from the strike price.
type OptionsGrant struct {
	Symbol        string
	Vesting       VestingPolicy
	StrikePrice   Money
	ExercisePrice Money
	Expiration    Date
	Type          OptionType

	// CompanyValuation carries a private per-share valuation for illiquid
	// symbols and the date it was assessed. The engine never chooses a
	// price source: callers decide whether to pass this or a market quote.
	CompanyValuation Money
	ValuationDate    Date
}

func (g OptionsGrant) Kind() GrantKind { return KindOptions }
func (g OptionsGrant) Ticker() string  { return g.Symbol }

func (g OptionsGrant) Validate() error {
	if g.Symbol == "" {
		return configErrorf("options grant has no symbol")
	}
	switch g.Type {
	case ISO, NSO, ESO:
	default:
		return configErrorf("unknown option type %q", string(g.Type))
	}
	if g.StrikePrice.IsNegative() {
		return configErrorf("strike price must be non-negative, got %s", g.StrikePrice)
	}
	return g.Vesting.Validate()
}

// PricingValue helps callers pick the price to pass to Valuation: the market
// quote when one exists, else the recorded private company valuation.
func (g OptionsGrant) PricingValue(market Money) Money {
	if market.IsZero() && !g.CompanyValuation.IsZero() {
		return g.CompanyValuation
	}
	return market
}

// Valuation computes the vested/unvested split of the grant as of 'on'.
//
// The per-unit value is the intrinsic value max(0, price − strike). Expired
// grants report zero value; the expiry check happens after the vesting
// computation so the vested-unit history remains queryable even then.
func (g OptionsGrant) Valuation(on Date, price Money) (ValuationResult, error) {
	sched, err := g.Vesting.Schedule()
	if err != nil {
		return ValuationResult{}, err
	}
	intrinsic := price.Sub(g.StrikePrice)
	if intrinsic.IsNegative() {
		intrinsic = M(0, intrinsic.Currency())
	}
	result := newValuation(g.Symbol, on, sched, intrinsic)
	if !g.Expiration.IsZero() && on.After(g.Expiration) {
		zero := M(0, intrinsic.Currency())
		result.VestedValue, result.UnvestedValue = zero, zero
	}
	return result, nil
}
