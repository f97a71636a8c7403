package strategies

import (
	"errors"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/slice"
)

// ErrStrategyNotFound is returned when a strategy name cannot be matched
var ErrStrategyNotFound = errors.New("strategy not found")

// Handler defines all functions required to run strategies against the
// synchronized data stream
type Handler interface {
	Name() string
	Description() string
	// Initialize is called once before the first slice, after subscriptions
	// are known
	Initialize(ctx common.Context) error
	// OnData is called for every synchronized slice in time order
	OnData(sl *slice.Slice, ctx common.Context) error
	SetCustomSettings(map[string]any) error
	SetDefaults()
}
