package slice

import (
	"time"

	"github.com/simquant/backtester/eventtypes/datapoint"
)

// Slice is one synchronized cross-security snapshot at a single simulated
// timestamp. It maps each subscribed security to its most recent data point;
// securities that have produced no data yet are absent. A slice lives for one
// time-step and is discarded after dispatch
type Slice struct {
	time    time.Time
	offset  int64
	symbols []string
	points  map[string]*datapoint.DataPoint
	fresh   map[string]bool
}
