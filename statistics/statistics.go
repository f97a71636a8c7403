// Package statistics turns the per-slice holding snapshots of a run into
// summary performance figures
package statistics

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/portfolio/holdings"
)

// AddSnapshot records the portfolio state after one processed slice
func (s *Statistic) AddSnapshot(h holdings.Holding) {
	s.series = append(s.series, h)
}

// AddBenchmarkPrice records the benchmark security's price for the same
// slice, used for relative return
func (s *Statistic) AddBenchmarkPrice(price decimal.Decimal) {
	s.benchmark = append(s.benchmark, price)
}

// OrderSubmitted, OrderFilled and OrderRejected count order outcomes for the
// final report
func (s *Statistic) OrderSubmitted() { s.ordersSubmitted++ }

// OrderFilled increments the filled count
func (s *Statistic) OrderFilled() { s.ordersFilled++ }

// OrderRejected increments the rejected count
func (s *Statistic) OrderRejected() { s.ordersRejected++ }

// SetWallClock stores how long the run took in real time
func (s *Statistic) SetWallClock(d time.Duration) {
	s.wallClock = d
}

// Snapshots returns the recorded series
func (s *Statistic) Snapshots() holdings.Series {
	return s.series
}

// TotalEquityReturn is the fractional return over the whole run
func (s *Statistic) TotalEquityReturn() (decimal.Decimal, error) {
	if len(s.series) < 2 {
		return decimal.Zero, errNotEnoughData
	}
	first := s.series[0].Equity
	if first.IsZero() {
		return decimal.Zero, errZeroInitial
	}
	return s.series[len(s.series)-1].Equity.Sub(first).Div(first), nil
}

// BenchmarkReturn is the fractional return of the benchmark series
func (s *Statistic) BenchmarkReturn() (decimal.Decimal, error) {
	if len(s.benchmark) < 2 {
		return decimal.Zero, errNotEnoughData
	}
	first := s.benchmark[0]
	if first.IsZero() {
		return decimal.Zero, errZeroInitial
	}
	return s.benchmark[len(s.benchmark)-1].Sub(first).Div(first), nil
}

// MaxDrawdown scans the equity curve for the deepest peak-to-trough decline
func (s *Statistic) MaxDrawdown() Drawdown {
	var out Drawdown
	if len(s.series) == 0 {
		return out
	}
	peak := s.series[0]
	candidateLow := s.series[0]
	for i := 1; i < len(s.series); i++ {
		h := s.series[i]
		if h.Equity.GreaterThan(peak.Equity) {
			peak = h
			candidateLow = h
			continue
		}
		if h.Equity.LessThan(candidateLow.Equity) {
			candidateLow = h
		}
		if peak.Equity.IsZero() {
			continue
		}
		dd := peak.Equity.Sub(candidateLow.Equity).Div(peak.Equity)
		if dd.GreaterThan(out.DrawdownPercent) {
			out.DrawdownPercent = dd
			out.Highest = peak
			out.Lowest = candidateLow
			out.Duration = candidateLow.Timestamp.Sub(peak.Timestamp)
		}
	}
	return out
}

// SharpeRatio is the mean excess per-slice return over its standard
// deviation. Not annualized; slices may be seconds or days apart
func (s *Statistic) SharpeRatio() (decimal.Decimal, error) {
	returns, err := s.periodReturns()
	if err != nil {
		return decimal.Zero, err
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return decimal.Zero, err
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return decimal.Zero, err
	}
	if sd == 0 {
		return decimal.Zero, nil
	}
	rf, _ := s.RiskFreeRate.Float64()
	return decimal.NewFromFloat((mean - rf) / sd), nil
}

// SortinoRatio penalizes only downside deviation
func (s *Statistic) SortinoRatio() (decimal.Decimal, error) {
	returns, err := s.periodReturns()
	if err != nil {
		return decimal.Zero, err
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return decimal.Zero, err
	}
	rf, _ := s.RiskFreeRate.Float64()
	var downside float64
	var n int
	for _, r := range returns {
		if r < rf {
			diff := r - rf
			downside += diff * diff
			n++
		}
	}
	if n == 0 || downside == 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat((mean - rf) / math.Sqrt(downside/float64(n))), nil
}

// SlicesPerSecond is the run's processing throughput
func (s *Statistic) SlicesPerSecond() float64 {
	if s.wallClock <= 0 {
		return 0
	}
	return float64(len(s.series)) / s.wallClock.Seconds()
}

// periodReturns converts the equity curve into slice-over-slice fractional
// returns as floats for the stats routines
func (s *Statistic) periodReturns() ([]float64, error) {
	if len(s.series) < 2 {
		return nil, errNotEnoughData
	}
	out := make([]float64, 0, len(s.series)-1)
	for i := 1; i < len(s.series); i++ {
		prev := s.series[i-1].Equity
		if prev.IsZero() {
			continue
		}
		r, _ := s.series[i].Equity.Sub(prev).Div(prev).Float64()
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, errNotEnoughData
	}
	return out, nil
}

// PrintResult writes the run summary through the logger
func (s *Statistic) PrintResult() {
	if len(s.series) == 0 {
		log.Warn(log.Global, "no snapshots recorded, nothing to report")
		return
	}
	first := s.series[0]
	last := s.series.Latest()
	log.Infoln(log.Global, "------------------Backtest Results------------------")
	log.Infof(log.Global, "From %v to %v, %v slices",
		first.Timestamp, last.Timestamp, len(s.series))
	log.Infof(log.Global, "Starting equity: %v", first.Equity.Round(2))
	log.Infof(log.Global, "Final equity: %v (cash %v, positions %v)",
		last.Equity.Round(2), last.Cash.Round(2), last.PositionsValue.Round(2))
	if ret, err := s.TotalEquityReturn(); err == nil {
		log.Infof(log.Global, "Total return: %v%%", ret.Mul(decimal.NewFromInt(100)).Round(4))
	}
	if s.BenchmarkSymbol != "" {
		if bret, err := s.BenchmarkReturn(); err == nil {
			log.Infof(log.Global, "Benchmark %v return: %v%%",
				s.BenchmarkSymbol, bret.Mul(decimal.NewFromInt(100)).Round(4))
		}
	}
	dd := s.MaxDrawdown()
	log.Infof(log.Global, "Max drawdown: %v%% over %v",
		dd.DrawdownPercent.Mul(decimal.NewFromInt(100)).Round(4), dd.Duration)
	if sharpe, err := s.SharpeRatio(); err == nil {
		log.Infof(log.Global, "Sharpe ratio: %v", sharpe.Round(4))
	}
	if sortino, err := s.SortinoRatio(); err == nil {
		log.Infof(log.Global, "Sortino ratio: %v", sortino.Round(4))
	}
	log.Infof(log.Global, "Orders: %v submitted, %v filled, %v rejected",
		s.ordersSubmitted, s.ordersFilled, s.ordersRejected)
	if s.wallClock > 0 {
		log.Infof(log.Global, "Processed %v slices in %v (%v slices/sec)",
			len(s.series), s.wallClock, fmt.Sprintf("%.0f", s.SlicesPerSecond()))
	}
}

// Reset clears the run's accumulated state
func (s *Statistic) Reset() {
	s.series = nil
	s.benchmark = nil
	s.ordersSubmitted = 0
	s.ordersFilled = 0
	s.ordersRejected = 0
	s.wallClock = 0
}
