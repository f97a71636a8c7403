package slice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/eventtypes/datapoint"
)

// New returns an empty slice for the given simulated timestamp
func New(t time.Time, offset int64) *Slice {
	return &Slice{
		time:   t,
		offset: offset,
		points: make(map[string]*datapoint.DataPoint),
		fresh:  make(map[string]bool),
	}
}

// Add stores a security's most recent data point. fresh marks whether the
// point was produced at this timestamp or carried forward from an earlier one
func (s *Slice) Add(d *datapoint.DataPoint, fresh bool) {
	if d == nil {
		return
	}
	sym := d.GetSymbol()
	if _, ok := s.points[sym]; !ok {
		s.symbols = append(s.symbols, sym)
	}
	s.points[sym] = d
	s.fresh[sym] = fresh
}

// Time returns the simulated timestamp the slice was built for
func (s *Slice) Time() time.Time {
	return s.time
}

// Offset returns the slice's position in the synchronized stream
func (s *Slice) Offset() int64 {
	return s.offset
}

// Get returns the data point for a symbol, false when the security has not
// produced any data yet
func (s *Slice) Get(symbol string) (*datapoint.DataPoint, bool) {
	d, ok := s.points[symbol]
	return d, ok
}

// Price returns the closing price for a symbol
func (s *Slice) Price(symbol string) (decimal.Decimal, bool) {
	d, ok := s.points[symbol]
	if !ok {
		return decimal.Zero, false
	}
	return d.Close, true
}

// Contains returns whether the slice holds data for a symbol
func (s *Slice) Contains(symbol string) bool {
	_, ok := s.points[symbol]
	return ok
}

// IsFresh returns whether the symbol's point was produced at this timestamp
// rather than carried forward
func (s *Slice) IsFresh(symbol string) bool {
	return s.fresh[symbol]
}

// Symbols returns the symbols present, in the order they were added, which
// for synchronized slices is subscription order
func (s *Slice) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// FreshCount returns how many securities produced new data at this timestamp
func (s *Slice) FreshCount() int {
	var n int
	for _, f := range s.fresh {
		if f {
			n++
		}
	}
	return n
}

// Len returns the number of securities in the slice
func (s *Slice) Len() int {
	return len(s.points)
}
