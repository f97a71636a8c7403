package datapoint

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/event"
)

// DataPoint is a single price/volume observation at a security's native
// resolution. For tick data the OHLC fields all carry the trade price and
// Period is zero
type DataPoint struct {
	event.Base
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
	// Period is the interval the bar covers, starting at Time
	Period time.Duration
}
