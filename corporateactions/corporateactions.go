package corporateactions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/log"
)

// Setup validates and sorts the scheduled actions. Equal dates keep their
// input order
func Setup(actions []Action) (*Processor, error) {
	sorted := make([]Action, len(actions))
	copy(sorted, actions)
	for i := range sorted {
		if sorted[i].Symbol == "" {
			return nil, fmt.Errorf("%w at index %v", errEmptySymbol, i)
		}
		sorted[i].Symbol = strings.ToUpper(sorted[i].Symbol)
		switch sorted[i].Kind {
		case Split:
			if !sorted[i].Factor.IsPositive() {
				return nil, fmt.Errorf("%w: %v on %v", errInvalidFactor,
					sorted[i].Symbol, sorted[i].Date.Format(time.DateOnly))
			}
		case Dividend:
			if !sorted[i].Amount.IsPositive() {
				return nil, fmt.Errorf("%w: %v on %v", errInvalidDividend,
					sorted[i].Symbol, sorted[i].Date.Format(time.DateOnly))
			}
		default:
			return nil, fmt.Errorf("%w: %q", errUnknownKind, sorted[i].Kind)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &Processor{
		pending:   sorted,
		processed: make(map[string]struct{}, len(sorted)),
	}, nil
}

// Process applies every still-pending action dated at or before ts. Splits
// rescale the ledger position and the consumed price history so indicators
// see a continuous series; dividends credit cash per share held. Applying
// the same action twice is a data integrity failure and aborts the run
func (p *Processor) Process(ts time.Time, ledger Ledger, feeds *data.HandlerPerSecurity) error {
	if ledger == nil || feeds == nil {
		return common.ErrNilArguments
	}
	for p.cursor < len(p.pending) {
		act := p.pending[p.cursor]
		if act.Date.After(ts) {
			return nil
		}
		key := act.key()
		if _, done := p.processed[key]; done {
			return fmt.Errorf("%w: %v %v on %v", common.ErrCorporateActionReplay,
				act.Kind, act.Symbol, act.Date.Format(time.DateOnly))
		}
		if err := p.apply(act, ledger, feeds); err != nil {
			return err
		}
		p.processed[key] = struct{}{}
		p.cursor++
	}
	return nil
}

func (p *Processor) apply(act Action, ledger Ledger, feeds *data.HandlerPerSecurity) error {
	switch act.Kind {
	case Split:
		if err := ledger.ApplySplit(act.Symbol, act.Factor); err != nil {
			return err
		}
		handler, err := feeds.GetHandlerForSecurity(act.Symbol)
		if err != nil {
			log.Warnf(log.CorpActions, "%v split has no feed to rescale: %v",
				act.Symbol, err)
			return nil
		}
		handler.RescaleHistory(act.Factor, act.Date)
		log.Debugf(log.CorpActions, "applied %v split factor %v on %v",
			act.Symbol, act.Factor, act.Date.Format(time.DateOnly))
	case Dividend:
		if err := ledger.ApplyDividend(act.Symbol, act.Amount); err != nil {
			return err
		}
		log.Debugf(log.CorpActions, "applied %v dividend %v per share on %v",
			act.Symbol, act.Amount, act.Date.Format(time.DateOnly))
	}
	return nil
}

// Pending returns the number of actions not yet applied
func (p *Processor) Pending() int {
	return len(p.pending) - p.cursor
}

// Reset clears the processed set for a fresh run
func (p *Processor) Reset() {
	p.cursor = 0
	p.processed = make(map[string]struct{}, len(p.pending))
}

// key identifies an action for exactly-once bookkeeping. Two distinct
// actions of the same kind for one symbol on one day are not supported
func (a Action) key() string {
	return a.Symbol + "|" + string(a.Kind) + "|" + a.Date.Format(time.DateOnly)
}
