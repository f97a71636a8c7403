package buyandhold

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/slice"
	"github.com/simquant/backtester/strategies/base"
)

const (
	// Name is the strategy name
	Name          = "buyandhold"
	symbolKey     = "symbol"
	allocationKey = "allocation"
	description   = `Buys the configured security to the target allocation on the first data point and holds it until the run ends`
)

// Strategy buys once and never trades again
type Strategy struct {
	base.Strategy
	allocation decimal.Decimal
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnData raises a single target-allocation order on the first fresh data
// point, then holds
func (s *Strategy) OnData(sl *slice.Slice, ctx common.Context) error {
	if sl == nil || ctx == nil {
		return common.ErrNilArguments
	}
	if ctx.IsInvested(s.Symbol()) || !s.HasFreshData(sl) {
		return nil
	}
	_, err := ctx.SetHoldings(s.Symbol(), s.allocation)
	return err
}

// SetCustomSettings applies symbol and allocation overrides from config
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
		default:
			return fmt.Errorf("%w: unrecognised key %v", base.ErrInvalidCustomSettings, k)
		}
	}
	return nil
}

// SetDefaults targets the full account in the first subscribed security
func (s *Strategy) SetDefaults() {
	s.allocation = decimal.NewFromInt(1)
}
