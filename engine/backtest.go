// Package engine wires feeds, synchronizer, ledger, exchange and strategy
// together and drives a backtest run to completion
package engine

import (
	"errors"
	"time"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/exchange"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/portfolio"
	"github.com/simquant/backtester/statistics"
)

// Run pumps the synchronized stream through the strategy until every feed is
// exhausted or a fatal error aborts the run. Recoverable order failures are
// logged and skipped; data integrity failures stop everything
func (bt *BackTest) Run() error {
	if bt.state != NotStarted {
		return errAlreadyRan
	}
	bt.state = Running
	started := time.Now()

	if err := bt.strategy.Initialize(bt.ctx); err != nil {
		return bt.abort(err)
	}

	for {
		sl, err := bt.sync.Next()
		if err != nil {
			return bt.abort(err)
		}
		if sl == nil {
			break
		}
		ts := sl.Time()

		if err = bt.corp.Process(ts, bt.ledger, bt.feeds); err != nil {
			return bt.abort(err)
		}
		bt.ledger.MarkToMarket(sl)
		bt.ctx.current = sl

		if err = bt.strategy.OnData(sl, bt.ctx); err != nil {
			if !recoverable(err) {
				return bt.abort(err)
			}
			log.Warnf(log.Engine, "order skipped at %v: %v", ts, err)
		}

		bt.stats.AddSnapshot(bt.ledger.Snapshot(ts, sl.Offset()))
		if bt.stats.BenchmarkSymbol != "" {
			if price, ok := sl.Price(bt.stats.BenchmarkSymbol); ok {
				bt.stats.AddBenchmarkPrice(price)
			}
		}
		bt.lastProcessed = ts
	}

	bt.stats.SetWallClock(time.Since(started))
	bt.state = Completed
	log.Infof(log.Engine, "run complete, %v slices processed up to %v",
		bt.sync.Offset(), bt.lastProcessed)
	return nil
}

// recoverable reports whether an order failure should skip the order and
// continue the run rather than abort it
func recoverable(err error) bool {
	return errors.Is(err, common.ErrNoMarketData) ||
		errors.Is(err, common.ErrInsufficientMargin) ||
		errors.Is(err, exchange.ErrOrderDropped)
}

func (bt *BackTest) abort(err error) error {
	bt.state = Aborted
	bt.stats.SetWallClock(0)
	return &FatalError{LastProcessed: bt.lastProcessed, Err: err}
}

// State returns the driver's lifecycle state
func (bt *BackTest) State() State {
	return bt.state
}

// LastProcessed returns the timestamp of the last fully processed slice
func (bt *BackTest) LastProcessed() time.Time {
	return bt.lastProcessed
}

// Statistics exposes the run's accumulated statistics
func (bt *BackTest) Statistics() *statistics.Statistic {
	return bt.stats
}

// Ledger exposes the portfolio for inspection after a run
func (bt *BackTest) Ledger() *portfolio.Portfolio {
	return bt.ledger
}

// PrintResult writes the run summary through the logger
func (bt *BackTest) PrintResult() {
	bt.stats.PrintResult()
}

// Reset rewinds every component so the backtest can run again. Feeds keep
// their loaded streams; only cursors and accumulated state clear
func (bt *BackTest) Reset() {
	bt.sync.Reset()
	bt.ledger.Reset()
	bt.corp.Reset()
	bt.stats.Reset()
	bt.ctx.current = nil
	bt.lastProcessed = time.Time{}
	bt.state = NotStarted
}
