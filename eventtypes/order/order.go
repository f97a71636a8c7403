package order

import "github.com/shopspring/decimal"

// IsTerminal returns whether the order reached a final status
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case Filled, Rejected, Canceled:
		return true
	}
	return false
}

// SetStatus transitions the order, refusing to leave a terminal status
func (o *Order) SetStatus(s Status) error {
	if o.IsTerminal() {
		return ErrOrderTerminal
	}
	o.Status = s
	return nil
}

// SignedQuantity returns the quantity negated for sells
func (o *Order) SignedQuantity() decimal.Decimal {
	if o.Side == Sell {
		return o.Quantity.Neg()
	}
	return o.Quantity
}

// SideForQuantity derives the order side from a signed quantity delta
func SideForQuantity(q decimal.Decimal) Side {
	if q.IsNegative() {
		return Sell
	}
	return Buy
}
