package slippage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simquant/backtester/eventtypes/order"
)

func TestNone(t *testing.T) {
	t.Parallel()
	price := decimal.NewFromInt(100)
	assert.True(t, None{}.Adjust(price, order.Buy).Equal(price))
	assert.True(t, None{}.Adjust(price, order.Sell).Equal(price))
}

func TestFixedRate(t *testing.T) {
	t.Parallel()
	m := FixedRate{Rate: decimal.NewFromFloat(0.01)}
	price := decimal.NewFromInt(100)
	assert.True(t, m.Adjust(price, order.Buy).Equal(decimal.NewFromInt(101)))
	assert.True(t, m.Adjust(price, order.Sell).Equal(decimal.NewFromInt(99)))
}

func TestRandomIsBoundedAndSeeded(t *testing.T) {
	t.Parallel()
	price := decimal.NewFromInt(100)
	maxRate := decimal.NewFromFloat(0.02)

	a := NewRandom(7, maxRate)
	b := NewRandom(7, maxRate)
	for i := 0; i < 50; i++ {
		got := a.Adjust(price, order.Buy)
		assert.True(t, got.GreaterThanOrEqual(price))
		assert.True(t, got.LessThanOrEqual(decimal.NewFromInt(102)))
		assert.True(t, got.Equal(b.Adjust(price, order.Buy)),
			"same seed must produce the same adjustments")
	}

	sell := a.Adjust(price, order.Sell)
	assert.True(t, sell.LessThanOrEqual(price))
}
