package synthetic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/security"
)

func TestLoadDeterminism(t *testing.T) {
	t.Parallel()
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)

	start := time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	a := &Feed{Security: sec, Start: start, End: end, Seed: 42}
	b := &Feed{Security: sec, Start: start, End: end, Seed: 42}
	require.NoError(t, a.Load())
	require.NoError(t, b.Load())

	as, bs := a.GetStream(), b.GetStream()
	require.Len(t, as, 60)
	require.Equal(t, len(as), len(bs))
	for i := range as {
		assert.True(t, as[i].GetClosePrice().Equal(bs[i].GetClosePrice()),
			"same seed should produce the same series")
		assert.Equal(t, as[i].GetTime(), bs[i].GetTime())
	}

	c := &Feed{Security: sec, Start: start, End: end, Seed: 43}
	require.NoError(t, c.Load())
	var differs bool
	for i := range as {
		if !as[i].GetClosePrice().Equal(c.GetStream()[i].GetClosePrice()) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "different seeds should produce different series")
}

func TestLoadTickResolution(t *testing.T) {
	t.Parallel()
	sec, err := security.New("IBM", security.Equity, security.Tick, "USD")
	require.NoError(t, err)

	start := time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC)
	f := &Feed{Security: sec, Start: start, End: start.Add(time.Second), Seed: 1}
	require.NoError(t, f.Load())
	assert.Len(t, f.GetStream(), 4)
	assert.Zero(t, f.GetStream()[0].GetPeriod())
}

func TestLoadInvalidRange(t *testing.T) {
	t.Parallel()
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)
	f := &Feed{Security: sec, Start: time.Now(), End: time.Now().Add(-time.Hour)}
	assert.Error(t, f.Load())
}
