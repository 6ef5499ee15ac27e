package wheel

import (
	"github.com/shopspring/decimal"
)

// CycleState is the position of a symbol in the wheel cycle.
type CycleState string

const (
	// Empty means no transaction at all for the symbol.
	Empty CycleState = "empty"
	// Waiting means no shares held: short puts outstanding, awaiting assignment.
	Waiting CycleState = "waiting"
	// Holding means shares held: selling calls against them.
	Holding CycleState = "holding"
)

// Engine layers the wheel strategy semantics on top of the option and
// position ledgers. It is stateless: every call replays the ledger.
type Engine struct {
	ledger    *Ledger
	cfg       Config
	options   *OptionLedger
	positions *PositionLedger
}

// NewEngine returns an Engine over l.
func NewEngine(l *Ledger, cfg Config) *Engine {
	return &Engine{
		ledger:    l,
		cfg:       cfg,
		options:   NewOptionLedger(l, cfg),
		positions: NewPositionLedger(l, cfg),
	}
}

// Ledger returns the ledger the engine reads.
func (e *Engine) Ledger() *Ledger { return e.ledger }

// Options returns the option ledger.
func (e *Engine) Options() *OptionLedger { return e.options }

// Positions returns the position ledger.
func (e *Engine) Positions() *PositionLedger { return e.positions }

// State returns the cycle state of symbol.
func (e *Engine) State(symbol string) CycleState {
	if _, found := e.ledger.First(BySymbol(symbol)); !found {
		return Empty
	}
	if e.positions.CostBasis(symbol).IsOpen() {
		return Holding
	}
	return Waiting
}

// Dividends returns the dividends received on symbol.
func (e *Engine) Dividends(symbol string) Money {
	total := e.ledger.zero()
	for _, tx := range e.ledger.Transactions(BySymbol(symbol), ByKind(KindDividend)) {
		total = total.Add(tx.Gross(e.cfg.multiplier()))
	}
	return total
}

// DaysHeld returns the number of days from the first transaction of symbol to
// the evaluation date.
func (e *Engine) DaysHeld(symbol string) (int, bool) {
	first, found := e.ledger.First(BySymbol(symbol))
	if !found {
		return 0, false
	}
	return e.cfg.asOf().DaysSince(first.Date), true
}

// AnnualizedReturn returns (netPremium / costBasis) * (365 / daysHeld) in
// percent, without compounding. It is not available when costBasis or
// daysHeld is not positive.
func AnnualizedReturn(netPremium, costBasis Money, daysHeld int) (Percent, bool) {
	if !costBasis.IsPositive() || daysHeld <= 0 {
		return 0, false
	}
	r := netPremium.Ratio(costBasis).Mul(decimal.NewFromInt(365)).Div(decimal.NewFromInt(int64(daysHeld)))
	return percentOf(r, decimal.NewFromInt(1)), true
}

// SymbolReport gathers every figure computed for a symbol.
type SymbolReport struct {
	Symbol   string
	State    CycleState
	Position PositionState
	Options  OptionPositionSummary
	Premiums PremiumSummary
	OpenLegs []OptionLeg

	StockCost Money
	Fees      Money
	Dividends Money
	Realized  Money

	Price              Optional[Money]
	MarketValue        Optional[Money]
	Unrealized         Optional[Money]
	EstimatedDividends Optional[Money] // annual, at the current rate
	DaysHeld           Optional[int]
	AnnualizedReturn   Optional[Percent]
	Recovery           Recovery
	Timeline           []CostTimelinePoint
	Trades             []TradePnL
	Stats              TradeStats
}

// Report computes every figure for symbol. Valuations need a quote for the
// symbol; without one they are not available.
func (e *Engine) Report(symbol string, quotes Quotes, rates DividendRates) SymbolReport {
	r := SymbolReport{
		Symbol:    symbol,
		State:     e.State(symbol),
		Position:  e.positions.CostBasis(symbol),
		Options:   e.options.Positions(symbol),
		Premiums:  e.options.Premiums(symbol),
		OpenLegs:  e.options.OpenLegs(symbol),
		StockCost: e.positions.StockCost(symbol),
		Fees:      e.positions.Fees(symbol),
		Dividends: e.Dividends(symbol),
		Realized:  e.positions.RealizedPnL(symbol),
		Recovery:  e.Recovery(symbol),
		Timeline:  e.positions.CostTimeline(symbol),
		Trades:    e.TradeSeries(symbol),
		Stats:     e.TradeStats(symbol),
	}

	if price, ok := quotes.Price(symbol); ok && e.ledger.compatible(price) {
		r.Price = Some(price)
		r.MarketValue = e.positions.MarketValue(symbol, price)
		r.Unrealized = e.positions.UnrealizedPnL(symbol, price)
	}
	if rate, ok := rates.Rate(symbol); ok && e.ledger.compatible(rate) {
		r.EstimatedDividends = Some(rate.Mul(r.Position.Shares))
	}
	if days, ok := e.DaysHeld(symbol); ok {
		r.DaysHeld = Some(days)
		if ret, ok := AnnualizedReturn(r.Premiums.Net, r.Position.CostBasis, days); ok {
			r.AnnualizedReturn = Some(ret)
		}
	}
	e.cfg.Logger.Debug().
		Str("symbol", symbol).
		Str("state", string(r.State)).
		Stringer("shares", r.Position.Shares).
		Stringer("cost_basis", r.Position.CostBasis).
		Msg("symbol report")
	return r
}
