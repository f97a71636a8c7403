package data

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/eventtypes/datapoint"
)

// Setup creates the handler map
func (h *HandlerPerSecurity) Setup() {
	if h.data == nil {
		h.data = make(map[string]Handler)
	}
}

// SetHandlerForSecurity assigns a data handler to a symbol
func (h *HandlerPerSecurity) SetHandlerForSecurity(symbol string, k Handler) {
	if h.data == nil {
		h.Setup()
	}
	h.data[strings.ToUpper(symbol)] = k
}

// GetHandlerForSecurity returns the handler for a symbol
func (h *HandlerPerSecurity) GetHandlerForSecurity(symbol string) (Handler, error) {
	if handler, ok := h.data[strings.ToUpper(symbol)]; ok {
		return handler, nil
	}
	return nil, ErrHandlerNotFound
}

// GetAllHandlers returns every held handler keyed by symbol
func (h *HandlerPerSecurity) GetAllHandlers() map[string]Handler {
	return h.data
}

// Reset returns the struct to defaults
func (h *HandlerPerSecurity) Reset() {
	h.data = nil
}

// Reset rewinds the stream to the beginning for a fresh run
func (b *Base) Reset() {
	b.latest = nil
	b.offset = 0
}

// GetStream returns the entire data list
func (b *Base) GetStream() []common.DataEvent {
	return b.stream
}

// Offset returns the cursor position in the stream
func (b *Base) Offset() int64 {
	return b.offset
}

// SetStream replaces the stream
func (b *Base) SetStream(s []common.DataEvent) {
	b.stream = s
}

// AppendStream appends new data onto the stream, ignoring nils
func (b *Base) AppendStream(s ...common.DataEvent) {
	for i := range s {
		if s[i] == nil {
			continue
		}
		b.stream = append(b.stream, s[i])
	}
}

// Next returns the next event and shifts the cursor, nil once exhausted
func (b *Base) Next() common.DataEvent {
	if int64(len(b.stream)) <= b.offset {
		return nil
	}
	ret := b.stream[b.offset]
	b.offset++
	b.latest = ret
	return ret
}

// History returns all previous data events up to the cursor
func (b *Base) History() []common.DataEvent {
	return b.stream[:b.offset]
}

// Latest returns the most recently consumed event
func (b *Base) Latest() common.DataEvent {
	return b.latest
}

// IsLastEvent returns whether the cursor has consumed the whole stream
func (b *Base) IsLastEvent() bool {
	return b.offset >= int64(len(b.stream))
}

// StreamClose returns the closing prices consumed so far, oldest first
func (b *Base) StreamClose() []decimal.Decimal {
	out := make([]decimal.Decimal, b.offset)
	for i := int64(0); i < b.offset; i++ {
		out[i] = b.stream[i].GetClosePrice()
	}
	return out
}

// HasDataAtTime reports whether the consumed portion of the stream holds an
// event at the given time
func (b *Base) HasDataAtTime(t time.Time) bool {
	for i := int64(0); i < b.offset; i++ {
		if b.stream[i].GetTime().Equal(t) {
			return true
		}
	}
	return false
}

// RescaleHistory multiplies the prices of already-consumed data points dated
// strictly before the cutoff by factor. Split adjustments use this so
// indicators see a continuous series; raw data from the split date onwards
// already trades at the adjusted price and must not be touched
func (b *Base) RescaleHistory(factor decimal.Decimal, before time.Time) {
	for i := int64(0); i < b.offset; i++ {
		if !b.stream[i].GetTime().Before(before) {
			continue
		}
		if dp, ok := b.stream[i].(*datapoint.DataPoint); ok {
			dp.RescalePrices(factor)
		}
	}
}

// SortStream sorts the stream by timestamp. Loaders call this before the
// merge begins; the synchronizer never reorders
func (b *Base) SortStream() {
	sort.SliceStable(b.stream, func(i, j int) bool {
		return b.stream[i].GetTime().Before(b.stream[j].GetTime())
	})
}
