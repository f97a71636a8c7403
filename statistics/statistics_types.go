package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/portfolio/holdings"
)

var (
	errNotEnoughData = errors.New("not enough data points")
	errZeroInitial   = errors.New("initial equity is zero")
)

// Drawdown describes the largest peak-to-trough equity decline of the run
type Drawdown struct {
	Highest         holdings.Holding
	Lowest          holdings.Holding
	DrawdownPercent decimal.Decimal
	Duration        time.Duration
}

// Statistic accumulates per-slice snapshots and computes the run's summary
// figures once the event loop finishes
type Statistic struct {
	RiskFreeRate    decimal.Decimal
	BenchmarkSymbol string

	series    holdings.Series
	benchmark []decimal.Decimal

	ordersSubmitted int
	ordersFilled    int
	ordersRejected  int
	wallClock       time.Duration
}
