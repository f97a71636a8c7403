package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/fill"
)

// apply folds a fill into the position. Adding in the same direction blends
// the average cost by absolute quantity; reducing realizes profit against
// the average cost; flipping through zero re-bases the cost at the fill price
func (p *Position) apply(f *fill.Fill) {
	qty := f.Quantity
	price := f.PurchasePrice

	switch {
	case p.Quantity.IsZero() || p.Quantity.Sign() == qty.Sign():
		total := p.Quantity.Abs().Add(qty.Abs())
		if !total.IsZero() {
			p.AverageCost = p.Quantity.Abs().Mul(p.AverageCost).
				Add(qty.Abs().Mul(price)).
				Div(total)
		}
		p.Quantity = p.Quantity.Add(qty)
	case qty.Abs().GreaterThan(p.Quantity.Abs()):
		// reduce to flat, realizing the full position, then flip
		p.RealizedPnL = p.RealizedPnL.Add(p.closedPnL(price, p.Quantity.Abs()))
		p.Quantity = p.Quantity.Add(qty)
		p.AverageCost = price
	default:
		p.RealizedPnL = p.RealizedPnL.Add(p.closedPnL(price, qty.Abs()))
		p.Quantity = p.Quantity.Add(qty)
		if p.Quantity.IsZero() {
			p.AverageCost = decimal.Zero
		}
	}

	p.FeesPaid = p.FeesPaid.Add(f.Fee)
	p.lastPrice = price
}

// closedPnL is the profit realized by closing closedQty at price. Longs gain
// when price exceeds average cost, shorts when it falls below
func (p *Position) closedPnL(price, closedQty decimal.Decimal) decimal.Decimal {
	diff := price.Sub(p.AverageCost)
	if p.Quantity.IsNegative() {
		diff = diff.Neg()
	}
	return diff.Mul(closedQty)
}

// MarketValue is the signed value of the position at its last-known price
func (p *Position) MarketValue() decimal.Decimal {
	return p.Quantity.Mul(p.lastPrice)
}

// UnrealizedPnL is the profit the position would realize at its last-known
// price
func (p *Position) UnrealizedPnL() decimal.Decimal {
	diff := p.lastPrice.Sub(p.AverageCost)
	if p.Quantity.IsNegative() {
		diff = diff.Neg()
	}
	return diff.Mul(p.Quantity.Abs())
}

// LastPrice returns the price the position was last marked at
func (p *Position) LastPrice() decimal.Decimal {
	return p.lastPrice
}
