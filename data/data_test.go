package data

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/eventtypes/event"
)

func makePoint(sym string, t time.Time, close int64) *datapoint.DataPoint {
	return &datapoint.DataPoint{
		Base:  event.Base{Time: t, Symbol: sym},
		Open:  decimal.NewFromInt(close),
		High:  decimal.NewFromInt(close),
		Low:   decimal.NewFromInt(close),
		Close: decimal.NewFromInt(close),
	}
}

func TestStreamCursor(t *testing.T) {
	t.Parallel()
	start := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	var b Base
	b.AppendStream(
		makePoint("SPY", start, 100),
		nil,
		makePoint("SPY", start.Add(time.Minute), 101),
	)
	require.Len(t, b.GetStream(), 2, "nil events should be dropped")

	first := b.Next()
	require.NotNil(t, first)
	assert.Equal(t, start, first.GetTime())
	assert.Equal(t, first, b.Latest())
	assert.False(t, b.IsLastEvent())

	second := b.Next()
	require.NotNil(t, second)
	assert.True(t, b.IsLastEvent())
	assert.Nil(t, b.Next())

	assert.Len(t, b.History(), 2)
	assert.True(t, b.HasDataAtTime(start))
	assert.False(t, b.HasDataAtTime(start.Add(time.Hour)))

	closes := b.StreamClose()
	require.Len(t, closes, 2)
	assert.True(t, closes[1].Equal(decimal.NewFromInt(101)))

	b.Reset()
	assert.Zero(t, b.Offset())
	assert.Nil(t, b.Latest())
}

func TestSortStream(t *testing.T) {
	t.Parallel()
	start := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	var b Base
	b.AppendStream(
		makePoint("SPY", start.Add(time.Minute), 101),
		makePoint("SPY", start, 100),
	)
	b.SortStream()
	assert.Equal(t, start, b.GetStream()[0].GetTime())
}

func TestRescaleHistory(t *testing.T) {
	t.Parallel()
	start := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	var b Base
	b.AppendStream(
		makePoint("SPY", start, 100),
		makePoint("SPY", start.Add(time.Minute), 102),
		makePoint("SPY", start.Add(2*time.Minute), 104),
	)
	b.Next()
	b.Next()

	// only the consumed portion before the cutoff is rescaled
	b.RescaleHistory(decimal.NewFromFloat(0.5), start.Add(time.Minute))
	assert.True(t, b.GetStream()[0].GetClosePrice().Equal(decimal.NewFromInt(50)))
	assert.True(t, b.GetStream()[1].GetClosePrice().Equal(decimal.NewFromInt(102)),
		"points at or after the cutoff keep their raw price")
	assert.True(t, b.GetStream()[2].GetClosePrice().Equal(decimal.NewFromInt(104)))
}

func TestHandlerPerSecurity(t *testing.T) {
	t.Parallel()
	var h HandlerPerSecurity
	var b Base
	h.SetHandlerForSecurity("spy", &testHandler{Base: &b})

	got, err := h.GetHandlerForSecurity("SPY")
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = h.GetHandlerForSecurity("AAPL")
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	h.Reset()
	_, err = h.GetHandlerForSecurity("SPY")
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

type testHandler struct {
	*Base
}

func (t *testHandler) Load() error { return nil }
