package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/simquant/backtester/config"
	"github.com/simquant/backtester/corporateactions"
	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/exchange"
	"github.com/simquant/backtester/portfolio"
	"github.com/simquant/backtester/security"
	"github.com/simquant/backtester/statistics"
	"github.com/simquant/backtester/strategies"
	"github.com/simquant/backtester/synchronizer"
)

var (
	errAlreadyRan = errors.New("backtest has already run, Reset before running again")
	errNilConfig  = errors.New("nil config received")
)

// State tracks the driver through its lifecycle. A BackTest runs exactly
// once; Reset returns it to NotStarted
type State int32

const (
	NotStarted State = iota
	Running
	Completed
	Aborted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// FatalError wraps an unrecoverable failure with the last timestamp that was
// fully processed, so a corrupt feed can be located
type FatalError struct {
	LastProcessed time.Time
	Err           error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("backtest aborted after %v: %v", e.LastProcessed, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// BackTest is the driver that owns every component of a run and pumps the
// synchronized stream through them
type BackTest struct {
	cfg        *config.Config
	securities []*security.Security
	feeds      *data.HandlerPerSecurity
	sync       *synchronizer.Synchronizer
	ledger     *portfolio.Portfolio
	exch       *exchange.Exchange
	corp       *corporateactions.Processor
	strategy   strategies.Handler
	stats      *statistics.Statistic

	ctx           *tradingContext
	state         State
	lastProcessed time.Time
}
