package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	s, err := New("spy", Equity, Minute, "")
	require.NoError(t, err)
	assert.Equal(t, "SPY", s.Symbol)
	assert.Equal(t, "USD", s.Currency)

	_, err = New("", Equity, Minute, "")
	assert.ErrorIs(t, err, ErrEmptySymbol)

	_, err = New("spy", "bond", Minute, "")
	assert.ErrorIs(t, err, ErrInvalidAsset)
}

func TestSetResolution(t *testing.T) {
	t.Parallel()
	s, err := New("eurusd", Forex, Second, "")
	require.NoError(t, err)

	assert.NoError(t, s.SetResolution(Minute), "widening should be allowed")
	assert.Equal(t, Minute, s.Resolution)

	err = s.SetResolution(Tick)
	assert.ErrorIs(t, err, ErrResolutionNarrowed)
	assert.Equal(t, Minute, s.Resolution, "failed narrowing should not change resolution")
}

func TestResolutionFromString(t *testing.T) {
	t.Parallel()
	for in, exp := range map[string]Resolution{
		"tick":   Tick,
		"Second": Second,
		"minute": Minute,
		"hour":   Hour,
		"daily":  Daily,
		"day":    Daily,
	} {
		r, err := ResolutionFromString(in)
		require.NoError(t, err)
		assert.Equal(t, exp, r)
	}
	_, err := ResolutionFromString("fortnight")
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestResolutionDuration(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.Duration(0), Tick.Duration())
	assert.Equal(t, time.Minute, Minute.Duration())
	assert.Equal(t, "daily", Daily.String())
}
