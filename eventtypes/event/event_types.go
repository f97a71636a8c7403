package event

import (
	"time"

	"github.com/simquant/backtester/security"
)

// Base is embedded into every concrete event type and carries the fields
// shared by all of them
type Base struct {
	Offset     int64
	Time       time.Time
	Symbol     string
	AssetType  security.Asset
	Resolution security.Resolution
	Reason     string
}
