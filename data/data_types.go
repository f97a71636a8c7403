package data

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/common"
)

var (
	// ErrHandlerNotFound returned when a handler is not found for a symbol
	ErrHandlerNotFound = errors.New("data handler not found")
	// ErrEmptyStream returned when a loader produced no data points
	ErrEmptyStream = errors.New("empty data stream")
)

// HandlerPerSecurity stores a data handler per subscribed symbol
type HandlerPerSecurity struct {
	data map[string]Handler
}

// Base is the foundational data storage and streaming implementation shared
// by every feed loader. The stream must be fully buffered before the merge
// step begins; nothing here blocks
type Base struct {
	latest common.DataEvent
	stream []common.DataEvent
	offset int64
}

// Handler interface for loading and streaming per-security data
type Handler interface {
	Loader
	Streamer
	Reset()
}

// Loader interface for loading data into the backtest-supported format
type Loader interface {
	Load() error
	AppendStream(s ...common.DataEvent)
}

// Streamer interface handles distributing per-security data, one event at a
// time through an offset cursor
type Streamer interface {
	Next() common.DataEvent
	GetStream() []common.DataEvent
	History() []common.DataEvent
	Latest() common.DataEvent
	Offset() int64
	IsLastEvent() bool

	StreamClose() []decimal.Decimal
	HasDataAtTime(time.Time) bool

	RescaleHistory(factor decimal.Decimal, before time.Time)
}
