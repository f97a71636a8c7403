package exchange

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/exchange/slippage"
)

var (
	errNegativeFeeRate = errors.New("fee rate cannot be negative")
	errInvalidSizeCaps = errors.New("maximum order size below minimum")
	// ErrOrderDropped is returned for orders that never reach the market,
	// such as a zero quantity delta or a size below the minimum
	ErrOrderDropped = errors.New("order dropped before submission")
)

// Settings control fill simulation for every order routed through Execute
type Settings struct {
	// FeeRate is charged on traded value, both sides
	FeeRate decimal.Decimal
	// Slippage adjusts the reference price against the taker. Nil means no
	// slippage
	Slippage slippage.Model
	// MinimumSize drops orders below this absolute quantity. Zero disables
	MinimumSize decimal.Decimal
	// MaximumSize clamps orders above this absolute quantity. Zero disables
	MaximumSize decimal.Decimal
}

// Exchange simulates immediate full execution against the current slice. No
// order book depth, no partial fills
type Exchange struct {
	settings Settings
}
