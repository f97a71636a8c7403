// Package slippage adjusts fill prices to simulate the cost of crossing the
// spread. Adjustments always move the price against the taker
package slippage

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/order"
)

// Model adjusts a reference price for an order side
type Model interface {
	Adjust(price decimal.Decimal, side order.Side) decimal.Decimal
}

// None fills at the reference price exactly
type None struct{}

// Adjust returns the price unchanged
func (None) Adjust(price decimal.Decimal, _ order.Side) decimal.Decimal {
	return price
}

// FixedRate worsens every fill by a constant fraction of price
type FixedRate struct {
	Rate decimal.Decimal
}

// Adjust moves the price against the order by the configured rate
func (f FixedRate) Adjust(price decimal.Decimal, side order.Side) decimal.Decimal {
	impact := price.Mul(f.Rate)
	if side == order.Sell {
		return price.Sub(impact)
	}
	return price.Add(impact)
}

// Random worsens fills by a uniformly random fraction up to MaxRate. The
// generator is seeded so identical runs produce identical fills
type Random struct {
	MaxRate decimal.Decimal
	rng     *rand.Rand
}

// NewRandom returns a seeded random slippage model
func NewRandom(seed int64, maxRate decimal.Decimal) *Random {
	return &Random{
		MaxRate: maxRate,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Adjust moves the price against the order by a random fraction of MaxRate
func (r *Random) Adjust(price decimal.Decimal, side order.Side) decimal.Decimal {
	impact := price.Mul(r.MaxRate).Mul(decimal.NewFromFloat(r.rng.Float64()))
	if side == order.Sell {
		return price.Sub(impact)
	}
	return price.Add(impact)
}
