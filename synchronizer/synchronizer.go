package synchronizer

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/slice"
)

// Setup validates subscriptions and returns a synchronizer for the date
// range. Subscription order is preserved and used for tie-breaking
func Setup(start, end time.Time, subscriptions []Subscription) (*Synchronizer, error) {
	if len(subscriptions) == 0 {
		return nil, errNoSubscriptions
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: %v -> %v", errInvalidDateRange, start, end)
	}
	seen := make(map[string]struct{}, len(subscriptions))
	for i := range subscriptions {
		if subscriptions[i].Security == nil || subscriptions[i].Data == nil {
			return nil, fmt.Errorf("%w at index %v", errNilSubscription, i)
		}
		sym := subscriptions[i].Security.Symbol
		if _, ok := seen[sym]; ok {
			return nil, fmt.Errorf("%w: %v", errDuplicateSymbol, sym)
		}
		seen[sym] = struct{}{}
	}
	return &Synchronizer{
		subscriptions: subscriptions,
		start:         start,
		end:           end,
		lastPoint:     make([]*datapoint.DataPoint, len(subscriptions)),
	}, nil
}

// SubscribedSymbols returns the symbols in subscription order
func (s *Synchronizer) SubscribedSymbols() []string {
	out := make([]string, len(s.subscriptions))
	for i := range s.subscriptions {
		out[i] = s.subscriptions[i].Security.Symbol
	}
	return out
}

// Next produces the slice at the next synchronized timestamp. Securities
// with no new data carry their last-known point forward; securities that
// have never produced data are absent. Returns nil once every feed is
// exhausted or the end date is reached
func (s *Synchronizer) Next() (*slice.Slice, error) {
	if !s.primed {
		if err := s.prime(); err != nil {
			return nil, err
		}
	}
	if s.queue.Len() == 0 {
		return nil, nil
	}

	current := s.queue[0].ts
	out := slice.New(current, s.offset)
	updated := make(map[int]struct{})

	for s.queue.Len() > 0 && s.queue[0].ts.Equal(current) {
		entry := heap.Pop(&s.queue).(queueEntry)
		entry.point.SetOffset(s.offset)
		out.Add(entry.point, true)
		s.lastPoint[entry.index] = entry.point
		updated[entry.index] = struct{}{}

		next, err := s.advance(entry.index, entry.ts)
		if err != nil {
			return nil, err
		}
		if next != nil {
			heap.Push(&s.queue, queueEntry{ts: next.Time, index: entry.index, point: next})
		}
	}

	// stale-tolerant gap fill: carry the last-known point for every
	// security without new data at this timestamp
	for i := range s.subscriptions {
		if _, ok := updated[i]; ok {
			continue
		}
		if s.lastPoint[i] != nil {
			out.Add(s.lastPoint[i], false)
		}
	}

	s.offset++
	s.lastEmitted = current
	return out, nil
}

// Offset returns the number of slices emitted so far
func (s *Synchronizer) Offset() int64 {
	return s.offset
}

// LastEmitted returns the timestamp of the most recent slice
func (s *Synchronizer) LastEmitted() time.Time {
	return s.lastEmitted
}

// Reset rewinds the synchronizer and every feed for a fresh run
func (s *Synchronizer) Reset() {
	s.queue = nil
	s.primed = false
	s.offset = 0
	s.lastEmitted = time.Time{}
	s.lastPoint = make([]*datapoint.DataPoint, len(s.subscriptions))
	for i := range s.subscriptions {
		s.subscriptions[i].Data.Reset()
	}
}

// prime seeds the queue with each feed's first event inside the date range
func (s *Synchronizer) prime() error {
	s.queue = make(eventQueue, 0, len(s.subscriptions))
	for i := range s.subscriptions {
		prev := time.Time{}
		for {
			dp, err := s.advance(i, prev)
			if err != nil {
				return err
			}
			if dp == nil {
				break
			}
			if dp.Time.Before(s.start) {
				prev = dp.Time
				continue
			}
			heap.Push(&s.queue, queueEntry{ts: dp.Time, index: i, point: dp})
			break
		}
	}
	heap.Init(&s.queue)
	s.primed = true
	log.Debugf(log.Sync, "primed %v feeds, %v with data in range",
		len(s.subscriptions), s.queue.Len())
	return nil
}

// advance pulls the next event from a feed, verifying time order against
// prev. An out-of-order timestamp means the underlying data is corrupt and
// the run must abort
func (s *Synchronizer) advance(index int, prev time.Time) (*datapoint.DataPoint, error) {
	ev := s.subscriptions[index].Data.Next()
	if ev == nil {
		return nil, nil
	}
	dp, ok := ev.(*datapoint.DataPoint)
	if !ok {
		return nil, fmt.Errorf("%w: expected data point from %v feed",
			common.ErrInvalidDataType, s.subscriptions[index].Security.Symbol)
	}
	if dp.Time.Before(prev) {
		return nil, fmt.Errorf("%w: %v produced %v after %v",
			common.ErrDataOrdering, s.subscriptions[index].Security.Symbol, dp.Time, prev)
	}
	if dp.Time.After(s.end) {
		// end of the requested window for this feed
		return nil, nil
	}
	return dp, nil
}
