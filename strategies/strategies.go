// Package strategies is the registry of runnable strategies
package strategies

import (
	"fmt"
	"strings"

	"github.com/simquant/backtester/strategies/buyandhold"
	"github.com/simquant/backtester/strategies/rsi"
)

// LoadStrategyByName returns the strategy matching the name with its
// defaults applied
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		strats[i].SetDefaults()
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w: %v", ErrStrategyNotFound, name)
}

// GetStrategies returns a new instance of every registered strategy
func GetStrategies() []Handler {
	return []Handler{
		new(buyandhold.Strategy),
		new(rsi.Strategy),
	}
}
