package engine

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/event"
	"github.com/simquant/backtester/eventtypes/order"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/slice"
)

// tradingContext is the strategy's window into the run. It only ever sees
// the current slice and the ledger, never future data
type tradingContext struct {
	bt      *BackTest
	current *slice.Slice
}

func (c *tradingContext) Time() time.Time {
	if c.current == nil {
		return time.Time{}
	}
	return c.current.Time()
}

func (c *tradingContext) SubscribedSymbols() []string {
	return c.bt.sync.SubscribedSymbols()
}

func (c *tradingContext) Invested() bool {
	return c.bt.ledger.Invested()
}

func (c *tradingContext) IsInvested(symbol string) bool {
	return c.bt.ledger.IsInvested(symbol)
}

func (c *tradingContext) Quantity(symbol string) decimal.Decimal {
	return c.bt.ledger.Quantity(symbol)
}

func (c *tradingContext) Cash() decimal.Decimal {
	return c.bt.ledger.Cash()
}

func (c *tradingContext) Equity() decimal.Decimal {
	return c.bt.ledger.Equity()
}

// SetHoldings raises a target-allocation order sized at execution time
// against current equity
func (c *tradingContext) SetHoldings(symbol string, target decimal.Decimal) (*order.Order, error) {
	o := c.newOrder(symbol)
	o.IsTargetAllocation = true
	o.TargetPercent = target
	return c.dispatch(o)
}

// SubmitOrder raises an order for an explicit signed quantity
func (c *tradingContext) SubmitOrder(symbol string, quantity decimal.Decimal) (*order.Order, error) {
	o := c.newOrder(symbol)
	o.Quantity = quantity
	o.Side = order.SideForQuantity(quantity)
	return c.dispatch(o)
}

// Liquidate closes any open position in the symbol. Holding nothing is a
// quiet no-op
func (c *tradingContext) Liquidate(symbol string) (*order.Order, error) {
	qty := c.bt.ledger.Quantity(symbol)
	if qty.IsZero() {
		return nil, nil
	}
	return c.SubmitOrder(symbol, qty.Neg())
}

// CloseHistory returns the closing prices consumed so far for a symbol,
// oldest first. Prices reflect any split adjustments already applied
func (c *tradingContext) CloseHistory(symbol string) []decimal.Decimal {
	handler, err := c.bt.feeds.GetHandlerForSecurity(symbol)
	if err != nil {
		return nil
	}
	return handler.StreamClose()
}

func (c *tradingContext) newOrder(symbol string) *order.Order {
	var base event.Base
	if c.current != nil {
		base = event.Base{
			Offset: c.current.Offset(),
			Time:   c.current.Time(),
			Symbol: symbol,
		}
	}
	id, _ := uuid.NewV4()
	return &order.Order{
		Base:   base,
		ID:     id.String(),
		Status: order.Submitted,
	}
}

func (c *tradingContext) dispatch(o *order.Order) (*order.Order, error) {
	c.bt.stats.OrderSubmitted()
	f, err := c.bt.exch.Execute(o, c.current, c.bt.ledger)
	switch {
	case err != nil:
		c.bt.stats.OrderRejected()
		return o, err
	case f == nil:
		// dropped before reaching the market, not an error
		log.Debugf(log.Engine, "order %v %v: %v", o.ID, o.GetSymbol(), o.GetReason())
		return o, nil
	}
	c.bt.stats.OrderFilled()
	return o, nil
}
