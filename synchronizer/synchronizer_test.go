package synchronizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/eventtypes/event"
	"github.com/simquant/backtester/security"
)

type testFeed struct {
	data.Base
}

func (f *testFeed) Load() error { return nil }

var testStart = time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC)

func makeFeed(t *testing.T, sym string, res security.Resolution, times ...time.Time) Subscription {
	t.Helper()
	sec, err := security.New(sym, security.Equity, res, "USD")
	require.NoError(t, err)
	f := &testFeed{}
	for i, ts := range times {
		f.AppendStream(&datapoint.DataPoint{
			Base:   event.Base{Time: ts, Symbol: sec.Symbol, Resolution: res},
			Close:  decimal.NewFromInt(int64(100 + i)),
			Open:   decimal.NewFromInt(int64(100 + i)),
			High:   decimal.NewFromInt(int64(100 + i)),
			Low:    decimal.NewFromInt(int64(100 + i)),
			Volume: decimal.NewFromInt(1),
		})
	}
	return Subscription{Security: sec, Data: f}
}

func TestSetupValidation(t *testing.T) {
	t.Parallel()
	_, err := Setup(testStart, testStart.Add(time.Hour), nil)
	assert.ErrorIs(t, err, errNoSubscriptions)

	sub := makeFeed(t, "SPY", security.Minute, testStart)
	_, err = Setup(testStart.Add(time.Hour), testStart, []Subscription{sub})
	assert.ErrorIs(t, err, errInvalidDateRange)

	_, err = Setup(testStart, testStart.Add(time.Hour), []Subscription{{}})
	assert.ErrorIs(t, err, errNilSubscription)

	dupe := makeFeed(t, "SPY", security.Minute, testStart)
	_, err = Setup(testStart, testStart.Add(time.Hour), []Subscription{sub, dupe})
	assert.ErrorIs(t, err, errDuplicateSymbol)
}

func TestNextMergesHeterogeneousResolutions(t *testing.T) {
	t.Parallel()
	spy := makeFeed(t, "SPY", security.Minute,
		testStart, testStart.Add(time.Minute), testStart.Add(2*time.Minute))
	aapl := makeFeed(t, "AAPL", security.Second,
		testStart.Add(30*time.Second), testStart.Add(90*time.Second))

	s, err := Setup(testStart, testStart.Add(time.Hour), []Subscription{spy, aapl})
	require.NoError(t, err)

	// t0: only SPY has produced data; AAPL absent, not stale-filled
	sl, err := s.Next()
	require.NoError(t, err)
	require.NotNil(t, sl)
	assert.Equal(t, testStart, sl.Time())
	assert.True(t, sl.IsFresh("SPY"))
	assert.False(t, sl.Contains("AAPL"), "never-produced security should be absent")

	// t0+30s: AAPL fresh, SPY carried forward
	sl, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, testStart.Add(30*time.Second), sl.Time())
	assert.True(t, sl.IsFresh("AAPL"))
	assert.True(t, sl.Contains("SPY"))
	assert.False(t, sl.IsFresh("SPY"), "gap should be filled with stale point")

	// timestamps strictly increase until exhaustion
	prev := sl.Time()
	for {
		sl, err = s.Next()
		require.NoError(t, err)
		if sl == nil {
			break
		}
		assert.True(t, sl.Time().After(prev), "slice timestamps must strictly increase")
		prev = sl.Time()
	}
	assert.Equal(t, testStart.Add(2*time.Minute), prev)
}

func TestNextTieBreakIsSubscriptionOrder(t *testing.T) {
	t.Parallel()
	msft := makeFeed(t, "MSFT", security.Minute, testStart)
	adbe := makeFeed(t, "ADBE", security.Minute, testStart)

	s, err := Setup(testStart, testStart.Add(time.Hour), []Subscription{msft, adbe})
	require.NoError(t, err)

	sl, err := s.Next()
	require.NoError(t, err)
	require.NotNil(t, sl)
	assert.Equal(t, []string{"MSFT", "ADBE"}, sl.Symbols(),
		"equal timestamps must resolve by subscription order")
}

func TestReplayDeterminism(t *testing.T) {
	t.Parallel()
	spy := makeFeed(t, "SPY", security.Minute,
		testStart, testStart.Add(time.Minute))
	eur := makeFeed(t, "EURUSD", security.Second,
		testStart, testStart.Add(20*time.Second), testStart.Add(time.Minute))

	s, err := Setup(testStart, testStart.Add(time.Hour), []Subscription{spy, eur})
	require.NoError(t, err)

	run := func() []string {
		var out []string
		for {
			sl, err := s.Next()
			require.NoError(t, err)
			if sl == nil {
				return out
			}
			out = append(out, sl.Time().String())
			for _, sym := range sl.Symbols() {
				out = append(out, sym)
			}
		}
	}

	first := run()
	s.Reset()
	second := run()
	assert.Equal(t, first, second, "identical feeds must replay identically")
}

func TestNextOutOfOrderIsFatal(t *testing.T) {
	t.Parallel()
	bad := makeFeed(t, "SPY", security.Minute,
		testStart, testStart.Add(2*time.Minute), testStart.Add(time.Minute))

	s, err := Setup(testStart, testStart.Add(time.Hour), []Subscription{bad})
	require.NoError(t, err)

	_, err = s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	assert.ErrorIs(t, err, common.ErrDataOrdering)
}

func TestNextHonoursEndDate(t *testing.T) {
	t.Parallel()
	spy := makeFeed(t, "SPY", security.Minute,
		testStart, testStart.Add(time.Minute), testStart.Add(2*time.Hour))

	s, err := Setup(testStart, testStart.Add(time.Hour), []Subscription{spy})
	require.NoError(t, err)

	var count int
	for {
		sl, err := s.Next()
		require.NoError(t, err)
		if sl == nil {
			break
		}
		count++
		assert.False(t, sl.Time().After(testStart.Add(time.Hour)))
	}
	assert.Equal(t, 2, count, "points beyond the end date are excluded")
}

func TestNextSkipsDataBeforeStart(t *testing.T) {
	t.Parallel()
	spy := makeFeed(t, "SPY", security.Minute,
		testStart.Add(-time.Hour), testStart, testStart.Add(time.Minute))

	s, err := Setup(testStart, testStart.Add(time.Hour), []Subscription{spy})
	require.NoError(t, err)

	sl, err := s.Next()
	require.NoError(t, err)
	require.NotNil(t, sl)
	assert.Equal(t, testStart, sl.Time())
}
