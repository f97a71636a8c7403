package holdings

import "github.com/shopspring/decimal"

// Latest returns the most recent snapshot, or a zero value when empty
func (s Series) Latest() Holding {
	if len(s) == 0 {
		return Holding{}
	}
	return s[len(s)-1]
}

// EquityCurve extracts the equity values in time order
func (s Series) EquityCurve() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s))
	for i := range s {
		out[i] = s[i].Equity
	}
	return out
}
