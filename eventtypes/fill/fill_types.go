package fill

import (
	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/event"
	"github.com/simquant/backtester/eventtypes/order"
)

// Fill is the event raised when a simulated order executes. Quantity is
// signed: negative for sells. There are no partial fills in this model; a
// fill that cannot be applied in full is rejected in its entirety
type Fill struct {
	event.Base
	OrderID  string
	Side     order.Side
	Quantity decimal.Decimal
	// ClosePrice is the unadjusted slice price at dispatch
	ClosePrice decimal.Decimal
	// PurchasePrice is the price after the slippage model
	PurchasePrice decimal.Decimal
	Fee           decimal.Decimal
	Total         decimal.Decimal
}
