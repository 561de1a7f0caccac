package equity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The grants file is JSONL: one grant record per line, identified by a
// "kind" field (rsu, options, espp). The format is human-readable and
// git-friendly, the same strategy the market files follow.

// vestingCmd is a specialized struct to read the flat vesting fields of a line.
type vestingCmd struct {
	GrantDate    Date      `json:"grant_date"`
	TotalUnits   int       `json:"total_units"`
	PeriodYears  int       `json:"period_years"`
	Frequency    Frequency `json:"frequency"`
	CliffMonths  int       `json:"cliff_months"`
	TerminatedOn Date      `json:"terminated_on"`
}

func (c vestingCmd) policy() VestingPolicy {
	p := VestingPolicy{
		GrantDate:   c.GrantDate,
		TotalUnits:  c.TotalUnits,
		PeriodYears: c.PeriodYears,
		Frequency:   c.Frequency,
		Cliff:       NoCliff(),
		Termination: Active(),
	}
	if c.CliffMonths > 0 {
		p.Cliff = CliffMonths(c.CliffMonths)
	}
	if !c.TerminatedOn.IsZero() {
		p.Termination = TerminatedOn(c.TerminatedOn)
	}
	return p
}

// appendVesting writes the flat vesting fields of a policy.
func appendVesting(w *jsonObjectWriter, p VestingPolicy) {
	w.Append("grant_date", p.GrantDate)
	w.Append("total_units", p.TotalUnits)
	w.Append("period_years", p.PeriodYears)
	w.Append("frequency", p.Frequency)
	if months, ok := p.Cliff.Months(); ok {
		w.Append("cliff_months", months)
	}
	if on, ok := p.Termination.On(); ok {
		w.Append("terminated_on", on)
	}
}

// MarshalJSON implements the json.Marshaler interface for RSUGrant.
func (g RSUGrant) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", KindRSU)
	w.Append("symbol", g.Symbol)
	appendVesting(&w, g.Vesting)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for OptionsGrant.
func (g OptionsGrant) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", KindOptions)
	w.Append("symbol", g.Symbol)
	appendVesting(&w, g.Vesting)
	w.Append("type", g.Type)
	w.Append("strike", g.StrikePrice.value)
	w.Append("exercise", g.ExercisePrice.value)
	w.Optional("currency", g.StrikePrice.Currency())
	w.Optional("expiration", g.Expiration)
	if !g.CompanyValuation.IsZero() {
		w.Append("company_valuation", g.CompanyValuation.value)
		w.Optional("valuation_date", g.ValuationDate)
	}
	return w.MarshalJSON()
}

// jperiod is the wire form of a buying period.
type jperiod struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// MarshalJSON implements the json.Marshaler interface for ESPPPlan.
func (p ESPPPlan) MarshalJSON() ([]byte, error) {
	periods := make([]jperiod, 0, len(p.Periods))
	for _, w := range p.Periods {
		periods = append(periods, jperiod{Start: w.Start, End: w.End})
	}
	var w jsonObjectWriter
	w.Append("kind", KindESPP)
	w.Append("symbol", p.Symbol)
	w.Append("salary", p.BaseSalary.value)
	w.Optional("currency", p.BaseSalary.Currency())
	w.Append("income_pct", float64(p.IncomePercent))
	w.Append("discount_pct", float64(p.DiscountPercent))
	w.Append("base_price", p.BaseStockPrice.value)
	w.Append("default_rate", p.DefaultRate)
	w.Append("periods", periods)
	return w.MarshalJSON()
}

// DecodeGrants decodes grant records from a stream of JSONL data, validates
// each one, and returns them as a Book.
func DecodeGrants(r io.Reader) (*Book, error) {
	book := NewBook()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Kind GrantKind `json:"kind"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify grant kind in line %q: %w", string(line), err)
		}

		var decoded Grant
		switch identifier.Kind {
		case KindRSU:
			var temp struct {
				vestingCmd
				Symbol string `json:"symbol"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			decoded = RSUGrant{Symbol: temp.Symbol, Vesting: temp.policy()}

		case KindOptions:
			var temp struct {
				vestingCmd
				Symbol           string          `json:"symbol"`
				Type             OptionType      `json:"type"`
				Strike           decimal.Decimal `json:"strike"`
				Exercise         decimal.Decimal `json:"exercise"`
				Currency         string          `json:"currency"`
				Expiration       Date            `json:"expiration"`
				CompanyValuation decimal.Decimal `json:"company_valuation"`
				ValuationDate    Date            `json:"valuation_date"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			if temp.Currency == "" {
				temp.Currency = USD
			}
			decoded = OptionsGrant{
				Symbol:           temp.Symbol,
				Vesting:          temp.policy(),
				Type:             temp.Type,
				StrikePrice:      M(temp.Strike, temp.Currency),
				ExercisePrice:    M(temp.Exercise, temp.Currency),
				Expiration:       temp.Expiration,
				CompanyValuation: M(temp.CompanyValuation, temp.Currency),
				ValuationDate:    temp.ValuationDate,
			}

		case KindESPP:
			var temp struct {
				Symbol      string          `json:"symbol"`
				Salary      decimal.Decimal `json:"salary"`
				Currency    string          `json:"currency"`
				IncomePct   float64         `json:"income_pct"`
				DiscountPct float64         `json:"discount_pct"`
				BasePrice   decimal.Decimal `json:"base_price"`
				DefaultRate float64         `json:"default_rate"`
				Periods     []jperiod       `json:"periods"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			plan := ESPPPlan{
				Symbol:          temp.Symbol,
				BaseSalary:      M(temp.Salary, temp.Currency),
				IncomePercent:   Percent(temp.IncomePct),
				DiscountPercent: Percent(temp.DiscountPct),
				BaseStockPrice:  M(temp.BasePrice, USD),
				DefaultRate:     temp.DefaultRate,
			}
			for _, w := range temp.Periods {
				plan.Periods = append(plan.Periods, BuyingPeriod{Start: w.Start, End: w.End})
			}
			decoded = plan

		default:
			return nil, fmt.Errorf("unknown grant kind %q in line %q", identifier.Kind, string(line))
		}

		if err := decoded.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s grant in line %q: %w", identifier.Kind, string(line), err)
		}
		book.Append(decoded)
	}
	return book, scanner.Err()
}

// EncodeGrant appends one grant record as a JSONL line.
func EncodeGrant(w io.Writer, g Grant) error {
	b, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("cannot encode %s grant: %w", g.Kind(), err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// EncodeGrants writes the whole book, one grant per line.
func EncodeGrants(w io.Writer, book *Book) error {
	for _, g := range book.Grants() {
		if err := EncodeGrant(w, g); err != nil {
			return err
		}
	}
	return nil
}

// jprice is the wire form of a current price line in prices.jsonl.
type jprice struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}

// jrate is the wire form of a dated FX rate line in rates.jsonl.
type jrate struct {
	On   Date    `json:"on"`
	Rate float64 `json:"rate"`
}

// DecodeSnapshot reads current prices and dated FX rates, one JSONL stream
// each, into a snapshot referenced at 'on'. Either reader may be nil.
func DecodeSnapshot(on Date, prices, rates io.Reader) (*Snapshot, error) {
	snap := NewSnapshot(on)
	if prices != nil {
		scanner := bufio.NewScanner(prices)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var jp jprice
			if err := json.Unmarshal(line, &jp); err != nil {
				return nil, fmt.Errorf("format error in price line %q: %w", string(line), err)
			}
			if jp.Currency == "" {
				jp.Currency = USD
			}
			snap.SetPrice(jp.Symbol, M(jp.Price, jp.Currency))
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	if rates != nil {
		scanner := bufio.NewScanner(rates)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var jr jrate
			if err := json.Unmarshal(line, &jr); err != nil {
				return nil, fmt.Errorf("format error in rate line %q: %w", string(line), err)
			}
			snap.RecordRate(jr.On, jr.Rate)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// EncodePrice appends one current-price line.
func EncodePrice(w io.Writer, symbol string, price Money) error {
	b, err := json.Marshal(jprice{Symbol: symbol, Price: price.value, Currency: price.Currency()})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// EncodeRate appends one dated FX rate line.
func EncodeRate(w io.Writer, on Date, rate float64) error {
	b, err := json.Marshal(jrate{On: on, Rate: rate})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
