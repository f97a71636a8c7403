package common

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/order"
	"github.com/simquant/backtester/security"
)

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it
	// shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDataType occurs when an event is not of the concrete type a
	// handler requires
	ErrInvalidDataType = errors.New("invalid datatype received")

	// ErrDataOrdering is fatal. A feed produced an out-of-order timestamp,
	// which means the underlying data is corrupt. The run is aborted rather
	// than silently reordered
	ErrDataOrdering = errors.New("feed data out of time order")
	// ErrInsufficientMargin is recoverable. The triggering order is rejected
	// and the run continues
	ErrInsufficientMargin = errors.New("insufficient margin")
	// ErrNoMarketData is recoverable. An order was raised for a security with
	// no price in the current slice; the order is dropped and logged
	ErrNoMarketData = errors.New("no market data in current slice")
	// ErrCorporateActionReplay is fatal. A dividend or split was applied
	// twice, indicating a data integrity bug
	ErrCorporateActionReplay = errors.New("corporate action already applied")
)

// Event is the shared interface for anything that moves through the engine
// with a timestamp and a security attached
type Event interface {
	GetOffset() int64
	SetOffset(int64)
	GetTime() time.Time
	GetSymbol() string
	GetAssetType() security.Asset
	GetResolution() security.Resolution
	GetReason() string
	AppendReason(string)
}

// DataEvent is a price observation flowing from a feed
type DataEvent interface {
	Event
	GetOpenPrice() decimal.Decimal
	GetHighPrice() decimal.Decimal
	GetLowPrice() decimal.Decimal
	GetClosePrice() decimal.Decimal
	GetVolume() decimal.Decimal
	GetPeriod() time.Duration
}

// Context is handed to a strategy on every callback. It exposes read-only
// portfolio queries and order submission; there is no ambient global state
type Context interface {
	Time() time.Time
	SubscribedSymbols() []string

	Invested() bool
	IsInvested(symbol string) bool
	Quantity(symbol string) decimal.Decimal
	Cash() decimal.Decimal
	Equity() decimal.Decimal

	// SetHoldings sizes an order so the position reaches the target fraction
	// of total equity. A zero quantity delta is dropped without submission
	SetHoldings(symbol string, target decimal.Decimal) (*order.Order, error)
	// SubmitOrder places an explicit order for a signed quantity
	SubmitOrder(symbol string, quantity decimal.Decimal) (*order.Order, error)
	// Liquidate closes any open position in the symbol
	Liquidate(symbol string) (*order.Order, error)

	// CloseHistory returns the closing prices seen so far for a symbol,
	// oldest first, for indicator calculations
	CloseHistory(symbol string) []decimal.Decimal
}
