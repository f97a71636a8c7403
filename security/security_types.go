package security

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAsset is returned when parsing an unknown asset class
	ErrInvalidAsset = errors.New("invalid asset class")
	// ErrInvalidResolution is returned when parsing an unknown resolution
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrResolutionNarrowed is returned when attempting to lower a security's
	// resolution after subscription. Widening is allowed mid-run, narrowing
	// would require data that was never loaded
	ErrResolutionNarrowed = errors.New("cannot narrow resolution after subscription")
	// ErrEmptySymbol is returned when a security is created without a symbol
	ErrEmptySymbol = errors.New("empty symbol")
)

// Asset is the class of a tradable security
type Asset string

const (
	Equity  Asset = "equity"
	Forex   Asset = "forex"
	Futures Asset = "futures"
	Crypto  Asset = "crypto"
)

// Resolution is the sampling granularity of a security's data stream.
// Tick has no bar period
type Resolution time.Duration

const (
	Tick   Resolution = 0
	Second Resolution = Resolution(time.Second)
	Minute Resolution = Resolution(time.Minute)
	Hour   Resolution = Resolution(time.Hour)
	Daily  Resolution = Resolution(24 * time.Hour)
)

// Security is a subscribed instrument. Immutable after subscription except
// for resolution, which may only be widened
type Security struct {
	Symbol     string
	Asset      Asset
	Resolution Resolution
	Currency   string
}
