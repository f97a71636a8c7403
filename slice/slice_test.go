package slice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/eventtypes/event"
)

func TestSliceAccessors(t *testing.T) {
	t.Parallel()
	ts := time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC)
	s := New(ts, 3)

	spy := &datapoint.DataPoint{
		Base:  event.Base{Time: ts, Symbol: "SPY"},
		Close: decimal.NewFromInt(100),
	}
	aapl := &datapoint.DataPoint{
		Base:  event.Base{Time: ts.Add(-time.Second), Symbol: "AAPL"},
		Close: decimal.NewFromInt(300),
	}
	s.Add(spy, true)
	s.Add(aapl, false)
	s.Add(nil, true)

	assert.Equal(t, ts, s.Time())
	assert.Equal(t, int64(3), s.Offset())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"SPY", "AAPL"}, s.Symbols())
	assert.Equal(t, 1, s.FreshCount())

	assert.True(t, s.IsFresh("SPY"))
	assert.False(t, s.IsFresh("AAPL"))
	assert.False(t, s.Contains("MSFT"))

	p, ok := s.Price("SPY")
	assert.True(t, ok)
	assert.True(t, p.Equal(decimal.NewFromInt(100)))

	_, ok = s.Price("MSFT")
	assert.False(t, ok)
}
