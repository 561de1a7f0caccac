package equity

import "fmt"

// Percent is a percentage expressed in [0..100] style units (15 means 15%).
type Percent float64

// Equal compares two percentages with a small tolerance.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Factor returns the multiplicative factor of the percentage (15% -> 0.15).
func (p Percent) Factor() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString returns the percentage with an explicit sign, or "-" for zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
