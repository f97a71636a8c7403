// Package base provides shared behaviour for strategy implementations
package base

import (
	"errors"
	"strings"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/slice"
)

var (
	// ErrInvalidCustomSettings is returned when a config key or value cannot
	// be applied to the strategy
	ErrInvalidCustomSettings = errors.New("invalid custom settings")
	// ErrTooMuchBadData is returned when missing data would distort an
	// indicator beyond use
	ErrTooMuchBadData = errors.New("too much bad data")
)

// Strategy is the base implementation shared by strategies that trade one
// security. The symbol defaults to the first subscription when not set in
// custom settings
type Strategy struct {
	symbol string
}

// Initialize resolves the traded symbol against the run's subscriptions
func (s *Strategy) Initialize(ctx common.Context) error {
	if ctx == nil {
		return common.ErrNilArguments
	}
	symbols := ctx.SubscribedSymbols()
	if len(symbols) == 0 {
		return errors.New("no subscribed securities")
	}
	if s.symbol == "" {
		s.symbol = symbols[0]
		return nil
	}
	for i := range symbols {
		if strings.EqualFold(symbols[i], s.symbol) {
			s.symbol = symbols[i]
			return nil
		}
	}
	return errors.New("configured symbol " + s.symbol + " is not subscribed")
}

// Symbol returns the security the strategy trades
func (s *Strategy) Symbol() string {
	return s.symbol
}

// SetSymbol overrides the traded security before Initialize runs
func (s *Strategy) SetSymbol(symbol string) {
	s.symbol = strings.ToUpper(symbol)
}

// HasFreshData reports whether the slice holds a point for the traded
// security produced at this timestamp rather than carried forward
func (s *Strategy) HasFreshData(sl *slice.Slice) bool {
	return sl != nil && sl.IsFresh(s.symbol)
}
