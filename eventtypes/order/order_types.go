package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/event"
)

// ErrOrderTerminal is returned when transitioning an order that already
// reached a terminal status
var ErrOrderTerminal = errors.New("order already in terminal status")

// Side is the direction of an order
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Status describes an order's lifecycle. Filled, Rejected and Canceled are
// terminal
type Status string

const (
	Submitted Status = "SUBMITTED"
	Filled    Status = "FILLED"
	Rejected  Status = "REJECTED"
	Canceled  Status = "CANCELED"
)

// Order contains all details for an order event. Either Quantity is set
// explicitly or IsTargetAllocation is true and TargetPercent holds the
// desired fraction of total equity
type Order struct {
	event.Base
	ID                 string
	Side               Side
	Status             Status
	Quantity           decimal.Decimal
	TargetPercent      decimal.Decimal
	IsTargetAllocation bool
	// Price is the reference price at submission, then the fill price once
	// filled
	Price decimal.Decimal
	Fee   decimal.Decimal
}
