package synthetic

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/eventtypes/event"
	"github.com/simquant/backtester/security"
)

// tick data carries a print roughly every quarter second
const tickStep = 250 * time.Millisecond

// Feed generates a deterministic pseudo-random walk for a security at its
// native resolution. Identical seeds always produce identical streams, which
// keeps replay and throughput measurements reproducible
type Feed struct {
	data.Base
	Security   *security.Security
	Start      time.Time
	End        time.Time
	StartPrice decimal.Decimal
	Seed       int64
}

// Load generates and buffers the full series
func (f *Feed) Load() error {
	if f.Security == nil {
		return fmt.Errorf("synthetic feed: %w", security.ErrEmptySymbol)
	}
	if !f.End.After(f.Start) {
		return fmt.Errorf("synthetic feed for %v: end %v not after start %v",
			f.Security.Symbol, f.End, f.Start)
	}
	price := f.StartPrice
	if price.IsZero() {
		price = decimal.NewFromInt(100)
	}
	step := f.Security.Resolution.Duration()
	if step == 0 {
		step = tickStep
	}
	rng := rand.New(rand.NewSource(f.Seed))
	for ts := f.Start; ts.Before(f.End); ts = ts.Add(step) {
		move := decimal.NewFromFloat((rng.Float64() - 0.5) * 0.002)
		next := price.Add(price.Mul(move))
		high := decimal.Max(price, next)
		low := decimal.Min(price, next)
		f.AppendStream(&datapoint.DataPoint{
			Base: event.Base{
				Time:       ts,
				Symbol:     f.Security.Symbol,
				AssetType:  f.Security.Asset,
				Resolution: f.Security.Resolution,
			},
			Open:   price,
			High:   high,
			Low:    low,
			Close:  next,
			Volume: decimal.NewFromInt(rng.Int63n(10000) + 1),
			Period: f.Security.Resolution.Duration(),
		})
		price = next
	}
	if len(f.GetStream()) == 0 {
		return fmt.Errorf("%v: %w", f.Security.Symbol, data.ErrEmptyStream)
	}
	return nil
}
