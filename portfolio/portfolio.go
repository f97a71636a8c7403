package portfolio

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/common"
	"github.com/simquant/backtester/eventtypes/fill"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/portfolio/holdings"
	"github.com/simquant/backtester/slice"
)

// Setup creates a portfolio with starting cash. maxLeverage is only read
// when margin is enabled
func Setup(initialCash decimal.Decimal, marginEnabled bool, maxLeverage decimal.Decimal) (*Portfolio, error) {
	if initialCash.IsNegative() {
		return nil, fmt.Errorf("%w: %v", errNegativeInitialCash, initialCash)
	}
	if marginEnabled && maxLeverage.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: %v", errInvalidLeverage, maxLeverage)
	}
	return &Portfolio{
		initialCash:   initialCash,
		cash:          initialCash,
		positions:     make(map[string]*Position),
		marginEnabled: marginEnabled,
		maxLeverage:   maxLeverage,
	}, nil
}

// ApplyFill settles a fill against cash and positions. The margin check runs
// before any mutation so a rejected fill leaves the portfolio untouched
func (p *Portfolio) ApplyFill(f *fill.Fill) error {
	if f == nil {
		return common.ErrNilEvent
	}
	sym := strings.ToUpper(f.GetSymbol())
	newCash := p.cash.Sub(f.TotalCost())

	if !p.marginEnabled && newCash.IsNegative() {
		return fmt.Errorf("%w: fill for %v %v at %v needs %v, cash %v",
			common.ErrInsufficientMargin, f.Quantity, sym, f.PurchasePrice,
			f.TotalCost(), p.cash)
	}
	if p.marginEnabled {
		if err := p.checkLeverage(sym, f, newCash); err != nil {
			return err
		}
	}

	pos, ok := p.positions[sym]
	if !ok {
		pos = &Position{Symbol: sym}
		p.positions[sym] = pos
	}
	pos.apply(f)
	p.cash = newCash
	p.fills = append(p.fills, f)
	if pos.Quantity.IsZero() {
		p.closedPnL = p.closedPnL.Add(pos.RealizedPnL)
		delete(p.positions, sym)
	}
	return nil
}

// checkLeverage rejects a fill whose resulting gross exposure exceeds
// equity times the leverage cap
func (p *Portfolio) checkLeverage(sym string, f *fill.Fill, newCash decimal.Decimal) error {
	gross := decimal.Zero
	net := newCash
	for s, pos := range p.positions {
		qty := pos.Quantity
		price := pos.lastPrice
		if s == sym {
			qty = qty.Add(f.Quantity)
			price = f.PurchasePrice
		}
		gross = gross.Add(qty.Abs().Mul(price))
		net = net.Add(qty.Mul(price))
	}
	if _, ok := p.positions[sym]; !ok {
		gross = gross.Add(f.Quantity.Abs().Mul(f.PurchasePrice))
		net = net.Add(f.Quantity.Mul(f.PurchasePrice))
	}
	if net.IsPositive() && gross.LessThanOrEqual(net.Mul(p.maxLeverage)) {
		return nil
	}
	return fmt.Errorf("%w: gross exposure %v exceeds %vx equity %v",
		common.ErrInsufficientMargin, gross, p.maxLeverage, net)
}

// MarkToMarket refreshes every open position's last-known price from the
// slice. Carried-forward points still count; a position only keeps a stale
// mark when its security is absent entirely
func (p *Portfolio) MarkToMarket(sl *slice.Slice) {
	if sl == nil {
		return
	}
	for sym, pos := range p.positions {
		if price, ok := sl.Price(sym); ok {
			pos.lastPrice = price
		}
	}
}

// Snapshot records the current state for the statistics layer
func (p *Portfolio) Snapshot(ts time.Time, offset int64) holdings.Holding {
	h := holdings.Holding{
		Timestamp:     ts,
		Offset:        offset,
		Cash:          p.cash,
		RealizedPnL:   p.closedPnL,
		OpenPositions: len(p.positions),
	}
	for _, pos := range p.positions {
		h.PositionsValue = h.PositionsValue.Add(pos.MarketValue())
		h.UnrealizedPnL = h.UnrealizedPnL.Add(pos.UnrealizedPnL())
		h.RealizedPnL = h.RealizedPnL.Add(pos.RealizedPnL)
	}
	h.Equity = h.Cash.Add(h.PositionsValue)
	p.snapshots = append(p.snapshots, h)
	return h
}

// ApplySplit rescales a position for a split factor. Price multiplies by the
// factor and quantity divides by it, leaving market value unchanged. Holding
// nothing is a no-op
func (p *Portfolio) ApplySplit(symbol string, factor decimal.Decimal) error {
	if factor.IsZero() {
		return errZeroSplitFactor
	}
	pos, ok := p.positions[strings.ToUpper(symbol)]
	if !ok {
		return nil
	}
	pos.Quantity = pos.Quantity.Div(factor)
	pos.AverageCost = pos.AverageCost.Mul(factor)
	pos.lastPrice = pos.lastPrice.Mul(factor)
	log.Debugf(log.Portfolio, "%v split %v: quantity now %v, avg cost %v",
		symbol, factor, pos.Quantity, pos.AverageCost)
	return nil
}

// ApplyDividend credits cash for each share held on the record date. Short
// positions pay the dividend instead of receiving it
func (p *Portfolio) ApplyDividend(symbol string, perShare decimal.Decimal) error {
	pos, ok := p.positions[strings.ToUpper(symbol)]
	if !ok {
		return nil
	}
	credit := perShare.Mul(pos.Quantity)
	p.cash = p.cash.Add(credit)
	log.Debugf(log.Portfolio, "%v dividend %v per share credits %v",
		symbol, perShare, credit)
	return nil
}

// Cash returns free cash
func (p *Portfolio) Cash() decimal.Decimal {
	return p.cash
}

// InitialCash returns the cash the run started with
func (p *Portfolio) InitialCash() decimal.Decimal {
	return p.initialCash
}

// Equity returns cash plus the marked value of every open position
func (p *Portfolio) Equity() decimal.Decimal {
	eq := p.cash
	for _, pos := range p.positions {
		eq = eq.Add(pos.MarketValue())
	}
	return eq
}

// Quantity returns the signed quantity held for a symbol, zero when flat
func (p *Portfolio) Quantity(symbol string) decimal.Decimal {
	if pos, ok := p.positions[strings.ToUpper(symbol)]; ok {
		return pos.Quantity
	}
	return decimal.Zero
}

// IsInvested reports whether a non-zero position is open for the symbol.
// Closed positions are removed on settlement, so this is a map lookup
func (p *Portfolio) IsInvested(symbol string) bool {
	_, ok := p.positions[strings.ToUpper(symbol)]
	return ok
}

// Invested reports whether any position is open
func (p *Portfolio) Invested() bool {
	return len(p.positions) > 0
}

// Position returns a copy of the named position
func (p *Portfolio) Position(symbol string) (Position, error) {
	pos, ok := p.positions[strings.ToUpper(symbol)]
	if !ok {
		return Position{}, fmt.Errorf("%w for %v", errNoPosition, symbol)
	}
	return *pos, nil
}

// Positions returns copies of every open position
func (p *Portfolio) Positions() []Position {
	out := make([]Position, 0, len(p.positions))
	for _, pos := range p.positions {
		out = append(out, *pos)
	}
	return out
}

// Fills returns the settled fills in application order
func (p *Portfolio) Fills() []*fill.Fill {
	return p.fills
}

// Snapshots returns the per-slice holding series
func (p *Portfolio) Snapshots() holdings.Series {
	return p.snapshots
}

// RealizedPnL sums realized profit across open and already-closed positions
func (p *Portfolio) RealizedPnL() decimal.Decimal {
	total := p.closedPnL
	for _, pos := range p.positions {
		total = total.Add(pos.RealizedPnL)
	}
	return total
}

// Reset restores the portfolio to its starting state
func (p *Portfolio) Reset() {
	p.cash = p.initialCash
	p.positions = make(map[string]*Position)
	p.closedPnL = decimal.Zero
	p.fills = nil
	p.snapshots = nil
}
