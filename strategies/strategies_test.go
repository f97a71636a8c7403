package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/strategies/buyandhold"
	"github.com/simquant/backtester/strategies/rsi"
)

func TestLoadStrategyByName(t *testing.T) {
	t.Parallel()
	s, err := LoadStrategyByName(buyandhold.Name)
	require.NoError(t, err)
	assert.Equal(t, buyandhold.Name, s.Name())

	s, err = LoadStrategyByName("RSI")
	require.NoError(t, err)
	assert.Equal(t, rsi.Name, s.Name(), "lookup is case insensitive")

	_, err = LoadStrategyByName("no-such-strategy")
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestGetStrategiesAreDistinct(t *testing.T) {
	t.Parallel()
	a := GetStrategies()
	b := GetStrategies()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.NotSame(t, a[i], b[i], "each load must return a fresh instance")
		assert.NotEmpty(t, a[i].Description())
	}
}
