package portfolio

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/fill"
	"github.com/simquant/backtester/portfolio/holdings"
)

var (
	errNegativeInitialCash = errors.New("initial cash cannot be negative")
	errInvalidLeverage     = errors.New("max leverage must be at least 1 when margin is enabled")
	errNoPosition          = errors.New("no open position")
	errZeroSplitFactor     = errors.New("split factor cannot be zero")
)

// Position tracks one security's signed quantity and cost basis. Quantity is
// negative for shorts. AverageCost is abs-quantity weighted and re-bases at
// the fill price whenever the position flips through zero
type Position struct {
	Symbol      string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	RealizedPnL decimal.Decimal
	FeesPaid    decimal.Decimal

	lastPrice decimal.Decimal
}

// Portfolio is the single source of truth for cash and positions. Fills are
// applied all-or-nothing: a rejected fill leaves no partial state behind
type Portfolio struct {
	initialCash   decimal.Decimal
	cash          decimal.Decimal
	positions     map[string]*Position
	closedPnL     decimal.Decimal
	fills         []*fill.Fill
	snapshots     holdings.Series
	marginEnabled bool
	maxLeverage   decimal.Decimal
}
