package fill

import "github.com/shopspring/decimal"

// Value returns the signed cash movement of the fill excluding fees,
// positive when cash leaves the account
func (f *Fill) Value() decimal.Decimal {
	return f.Quantity.Mul(f.PurchasePrice)
}

// TotalCost returns the signed cash movement including the fee
func (f *Fill) TotalCost() decimal.Decimal {
	return f.Value().Add(f.Fee)
}
