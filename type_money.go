package equity

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a given currency.
//
// The amount is kept as an exact decimal in major units, it is never rounded
// during computation. Formatting and fraction digits come from the go-money
// currency metadata.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M is the Money factory.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's full currency definition.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency, even for unknown codes.
	return *money.New(0, m.cur).Currency()
}

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// String returns the money value formatted with its currency conventions.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString returns the string representation with an explicit sign.
// Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul returns the money value multiplied by a number of units.
func (m Money) Mul(n Quantity) Money { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// Div returns the money value divided by a number of units.
func (m Money) Div(n Quantity) Money { return Money{value: m.value.Div(n.value), cur: m.cur} }

// DivPrice returns how many units of price 'n' the amount m buys.
func (m Money) DivPrice(n Money) Quantity { return Quantity{value: m.value.Div(n.value)} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// AsFloat returns an inexact float64 view of the amount, for display ratios only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON writes the money as {"currency":..., "amount":...}, the amount
// rounded to the currency's fraction digits.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}
