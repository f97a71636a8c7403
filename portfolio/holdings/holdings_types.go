package holdings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a point-in-time snapshot of portfolio state, taken after each
// processed slice so the statistics layer can replay the equity curve
type Holding struct {
	Timestamp      time.Time       `json:"timestamp"`
	Offset         int64           `json:"offset"`
	Cash           decimal.Decimal `json:"cash"`
	PositionsValue decimal.Decimal `json:"positions-value"`
	Equity         decimal.Decimal `json:"equity"`
	RealizedPnL    decimal.Decimal `json:"realized-pnl"`
	UnrealizedPnL  decimal.Decimal `json:"unrealized-pnl"`
	OpenPositions  int             `json:"open-positions"`
}

// Series is an append-only run of snapshots in time order
type Series []Holding
