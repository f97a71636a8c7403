package rsi

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/slice"
	"github.com/simquant/backtester/strategies/base"
)

const (
	// Name is the strategy name
	Name          = "rsi"
	symbolKey     = "symbol"
	allocationKey = "allocation"
	rsiPeriodKey  = "rsi-period"
	rsiLowKey     = "rsi-low"
	rsiHighKey    = "rsi-high"
	description   = `The relative strength index charts the current and historical strength or weakness of a security based on the closing prices of a recent trading period. Buys when oversold, liquidates when overbought`
)

// Strategy trades mean reversion on the RSI indicator
type Strategy struct {
	base.Strategy
	allocation decimal.Decimal
	rsiPeriod  int
	rsiLow     decimal.Decimal
	rsiHigh    decimal.Decimal
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnData enters when RSI crosses below the low threshold and exits when it
// crosses above the high threshold. Carried-forward points are skipped so
// the indicator only updates on fresh data
func (s *Strategy) OnData(sl *slice.Slice, ctx common.Context) error {
	if sl == nil || ctx == nil {
		return common.ErrNilArguments
	}
	if !s.HasFreshData(sl) {
		return nil
	}
	closes := ctx.CloseHistory(s.Symbol())
	if len(closes) <= s.rsiPeriod {
		return nil
	}
	series := make([]float64, len(closes))
	for i := range closes {
		series[i] = closes[i].InexactFloat64()
	}
	rsi := indicators.RSI(series, s.rsiPeriod)
	latest := decimal.NewFromFloat(rsi[len(rsi)-1])

	switch {
	case latest.GreaterThanOrEqual(s.rsiHigh) && ctx.IsInvested(s.Symbol()):
		_, err := ctx.Liquidate(s.Symbol())
		return err
	case latest.LessThanOrEqual(s.rsiLow) && !ctx.IsInvested(s.Symbol()):
		_, err := ctx.SetHoldings(s.Symbol(), s.allocation)
		return err
	}
	return nil
}

// SetCustomSettings allows modifying the RSI limits and traded security
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case symbolKey:
			sym, ok := v.(string)
			if !ok || sym == "" {
				return fmt.Errorf("%w: symbol value could not be parsed: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.SetSymbol(sym)
		case allocationKey:
			alloc, ok := v.(float64)
			if !ok || alloc <= 0 || alloc > 1 {
				return fmt.Errorf("%w: allocation must be in (0, 1]: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.allocation = decimal.NewFromFloat(alloc)
		case rsiHighKey:
			rsiHigh, ok := v.(float64)
			if !ok || rsiHigh <= 0 {
				return fmt.Errorf("%w: rsi-high value could not be parsed: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.rsiHigh = decimal.NewFromFloat(rsiHigh)
		case rsiLowKey:
			rsiLow, ok := v.(float64)
			if !ok || rsiLow <= 0 {
				return fmt.Errorf("%w: rsi-low value could not be parsed: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.rsiLow = decimal.NewFromFloat(rsiLow)
		case rsiPeriodKey:
			rsiPeriod, ok := v.(float64)
			if !ok || rsiPeriod <= 0 {
				return fmt.Errorf("%w: rsi-period value could not be parsed: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.rsiPeriod = int(rsiPeriod)
		default:
			return fmt.Errorf("%w: unrecognised key %v", base.ErrInvalidCustomSettings, k)
		}
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.allocation = decimal.NewFromInt(1)
	s.rsiPeriod = 14
	s.rsiLow = decimal.NewFromInt(30)
	s.rsiHigh = decimal.NewFromInt(70)
}
