package synchronizer

import (
	"errors"
	"time"

	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/security"
)

var (
	errNoSubscriptions  = errors.New("no subscriptions to synchronize")
	errNilSubscription  = errors.New("subscription missing security or data handler")
	errInvalidDateRange = errors.New("end date not after start date")
	errDuplicateSymbol  = errors.New("symbol subscribed twice")
)

// Subscription pairs a security with its buffered data handler. The position
// in the subscription list is the deterministic tie-break for data points
// sharing a timestamp
type Subscription struct {
	Security *security.Security
	Data     data.Handler
}

// Synchronizer merges per-security feeds into a single time-ordered stream
// of slices. It is strictly sequential and not reentrant; feeds must be
// fully buffered before Next is first called
type Synchronizer struct {
	subscriptions []Subscription
	start         time.Time
	end           time.Time

	queue       eventQueue
	lastPoint   []*datapoint.DataPoint
	lastEmitted time.Time
	offset      int64
	primed      bool
}

type queueEntry struct {
	ts    time.Time
	index int
	point *datapoint.DataPoint
}

// eventQueue is a min-heap ordered by (timestamp, subscription index)
type eventQueue []queueEntry

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].ts.Equal(q[j].ts) {
		return q[i].index < q[j].index
	}
	return q[i].ts.Before(q[j].ts)
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x interface{}) {
	*q = append(*q, x.(queueEntry))
}

func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}
