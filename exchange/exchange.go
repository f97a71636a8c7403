// Package exchange simulates order execution against synchronized market
// data. Orders execute immediately and fully at the current slice price,
// adjusted for slippage, or not at all
package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/eventtypes/fill"
	"github.com/simquant/backtester/eventtypes/order"
	"github.com/simquant/backtester/exchange/slippage"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/portfolio"
	"github.com/simquant/backtester/slice"
)

// Setup validates settings and returns an exchange. A nil slippage model
// defaults to no slippage
func Setup(settings Settings) (*Exchange, error) {
	if settings.FeeRate.IsNegative() {
		return nil, fmt.Errorf("%w: %v", errNegativeFeeRate, settings.FeeRate)
	}
	if !settings.MaximumSize.IsZero() && settings.MaximumSize.LessThan(settings.MinimumSize) {
		return nil, fmt.Errorf("%w: max %v min %v", errInvalidSizeCaps,
			settings.MaximumSize, settings.MinimumSize)
	}
	if settings.Slippage == nil {
		settings.Slippage = slippage.None{}
	}
	return &Exchange{settings: settings}, nil
}

// FeeRate returns the configured fee rate
func (e *Exchange) FeeRate() decimal.Decimal {
	return e.settings.FeeRate
}

// SizeTargetAllocation converts a target equity fraction into a quantity
// delta from the current position. Sizing reserves the fee so the resulting
// cash balance cannot go negative, and truncates toward zero because
// fractional shares are not modelled
func (e *Exchange) SizeTargetAllocation(target, equity, currentQty, price decimal.Decimal) decimal.Decimal {
	perShare := price.Mul(decimal.NewFromInt(1).Add(e.settings.FeeRate))
	if !perShare.IsPositive() {
		return decimal.Zero
	}
	desired := target.Mul(equity).Div(perShare).Truncate(0)
	return desired.Sub(currentQty)
}

// Execute fills the order against the current slice and settles it in the
// ledger. The order is mutated to its terminal status; the returned fill is
// nil whenever the order did not trade
func (e *Exchange) Execute(o *order.Order, sl *slice.Slice, ledger *portfolio.Portfolio) (*fill.Fill, error) {
	if o == nil || sl == nil || ledger == nil {
		return nil, common.ErrNilArguments
	}
	sym := o.GetSymbol()
	price, ok := sl.Price(sym)
	if !ok || !price.IsPositive() {
		o.AppendReason("no price in current slice")
		if err := o.SetStatus(order.Rejected); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w for %v at %v", common.ErrNoMarketData, sym, sl.Time())
	}

	qty := o.Quantity
	if o.IsTargetAllocation {
		qty = e.SizeTargetAllocation(o.TargetPercent, ledger.Equity(), ledger.Quantity(sym), price)
		if qty.IsZero() {
			o.AppendReason("already at target allocation")
			if err := o.SetStatus(order.Canceled); err != nil {
				return nil, err
			}
			log.Debugf(log.Exchange, "%v order dropped, zero quantity delta", sym)
			return nil, nil
		}
		o.Quantity = qty
		o.Side = order.SideForQuantity(qty)
	}

	if !e.settings.MinimumSize.IsZero() && qty.Abs().LessThan(e.settings.MinimumSize) {
		o.AppendReasonf("size %v below minimum %v", qty.Abs(), e.settings.MinimumSize)
		if err := o.SetStatus(order.Canceled); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v size %v below minimum", ErrOrderDropped, sym, qty.Abs())
	}
	if !e.settings.MaximumSize.IsZero() && qty.Abs().GreaterThan(e.settings.MaximumSize) {
		clamped := e.settings.MaximumSize
		if qty.IsNegative() {
			clamped = clamped.Neg()
		}
		o.AppendReasonf("clamped from %v to maximum size %v", qty, clamped)
		qty = clamped
		o.Quantity = qty
	}

	fillPrice := e.settings.Slippage.Adjust(price, o.Side)
	fee := fillPrice.Mul(qty.Abs()).Mul(e.settings.FeeRate)
	f := &fill.Fill{
		Base:          o.Base,
		OrderID:       o.ID,
		Side:          o.Side,
		Quantity:      qty,
		ClosePrice:    price,
		PurchasePrice: fillPrice,
		Fee:           fee,
	}
	f.Total = f.TotalCost()

	if err := ledger.ApplyFill(f); err != nil {
		o.AppendReason(err.Error())
		if stErr := o.SetStatus(order.Rejected); stErr != nil {
			return nil, stErr
		}
		return nil, err
	}

	o.Price = fillPrice
	o.Fee = fee
	if err := o.SetStatus(order.Filled); err != nil {
		return nil, err
	}
	log.Debugf(log.Exchange, "filled %v %v %v at %v fee %v",
		o.Side, qty.Abs(), sym, fillPrice, fee)
	return f, nil
}
