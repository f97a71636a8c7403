package statistics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/portfolio/holdings"
)

var statStart = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

func seedEquity(s *Statistic, values ...float64) {
	for i, v := range values {
		s.AddSnapshot(holdings.Holding{
			Timestamp: statStart.AddDate(0, 0, i),
			Offset:    int64(i),
			Equity:    decimal.NewFromFloat(v),
		})
	}
}

func TestTotalEquityReturn(t *testing.T) {
	t.Parallel()
	s := &Statistic{}
	_, err := s.TotalEquityReturn()
	assert.ErrorIs(t, err, errNotEnoughData)

	seedEquity(s, 100000, 101000, 110000)
	ret, err := s.TotalEquityReturn()
	require.NoError(t, err)
	assert.True(t, ret.Equal(decimal.NewFromFloat(0.1)))
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()
	s := &Statistic{}
	seedEquity(s, 100, 120, 90, 95, 130, 110)

	dd := s.MaxDrawdown()
	assert.True(t, dd.DrawdownPercent.Equal(decimal.NewFromFloat(0.25)),
		"deepest decline is 120 to 90")
	assert.True(t, dd.Highest.Equity.Equal(decimal.NewFromInt(120)))
	assert.True(t, dd.Lowest.Equity.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 24*time.Hour, dd.Duration)
}

func TestMaxDrawdownMonotonicCurve(t *testing.T) {
	t.Parallel()
	s := &Statistic{}
	seedEquity(s, 100, 110, 120, 130)
	dd := s.MaxDrawdown()
	assert.True(t, dd.DrawdownPercent.IsZero(), "a rising curve has no drawdown")
}

func TestSharpeAndSortino(t *testing.T) {
	t.Parallel()
	s := &Statistic{}
	seedEquity(s, 100, 102, 101, 104, 103, 107)

	sharpe, err := s.SharpeRatio()
	require.NoError(t, err)
	assert.True(t, sharpe.IsPositive(), "an up-trending curve has positive sharpe")

	sortino, err := s.SortinoRatio()
	require.NoError(t, err)
	assert.True(t, sortino.IsPositive())
}

func TestSharpeFlatCurve(t *testing.T) {
	t.Parallel()
	s := &Statistic{}
	seedEquity(s, 100, 100, 100)
	sharpe, err := s.SharpeRatio()
	require.NoError(t, err)
	assert.True(t, sharpe.IsZero(), "zero variance must not divide by zero")
}

func TestBenchmarkReturn(t *testing.T) {
	t.Parallel()
	s := &Statistic{BenchmarkSymbol: "SPY"}
	s.AddBenchmarkPrice(decimal.NewFromInt(100))
	s.AddBenchmarkPrice(decimal.NewFromInt(105))
	ret, err := s.BenchmarkReturn()
	require.NoError(t, err)
	assert.True(t, ret.Equal(decimal.NewFromFloat(0.05)))
}

func TestThroughputAndReset(t *testing.T) {
	t.Parallel()
	s := &Statistic{}
	seedEquity(s, 100, 101, 102, 103)
	s.SetWallClock(2 * time.Second)
	assert.InDelta(t, 2.0, s.SlicesPerSecond(), 0.0001)

	s.OrderSubmitted()
	s.OrderFilled()
	s.Reset()
	assert.Empty(t, s.Snapshots())
	assert.Zero(t, s.SlicesPerSecond())
}
