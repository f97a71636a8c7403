package corporateactions

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errUnknownKind     = errors.New("unknown corporate action kind")
	errInvalidFactor   = errors.New("split factor must be positive")
	errInvalidDividend = errors.New("dividend amount must be positive")
	errEmptySymbol     = errors.New("corporate action missing symbol")
)

// Kind of corporate action
type Kind string

const (
	// Dividend credits cash for each share held on the action date
	Dividend Kind = "DIVIDEND"
	// Split rescales price and quantity while preserving position value. A
	// 2-for-1 split carries factor 0.5: price halves and quantity doubles
	Split Kind = "SPLIT"
)

// Action is a scheduled dividend or split for one security
type Action struct {
	Symbol string          `json:"symbol"`
	Date   time.Time       `json:"date"`
	Kind   Kind            `json:"kind"`
	Factor decimal.Decimal `json:"factor"`
	Amount decimal.Decimal `json:"amount"`
}

// Ledger is the portfolio surface corporate actions mutate. Kept narrow so
// the processor stays decoupled from position bookkeeping
type Ledger interface {
	Quantity(symbol string) decimal.Decimal
	ApplySplit(symbol string, factor decimal.Decimal) error
	ApplyDividend(symbol string, perShare decimal.Decimal) error
}

// Processor applies scheduled actions exactly once as simulated time passes
// their dates. Actions are held sorted by date; the processed set guards
// against replay
type Processor struct {
	pending   []Action
	cursor    int
	processed map[string]struct{}
}
