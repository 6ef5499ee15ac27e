package wheel

import (
	"github.com/shopspring/decimal"
)

// Aggregator fans the engine over every symbol of a ledger.
type Aggregator struct {
	engine *Engine
}

// NewAggregator returns an Aggregator over l.
func NewAggregator(l *Ledger, cfg Config) *Aggregator {
	return &Aggregator{engine: NewEngine(l, cfg)}
}

// Engine returns the underlying engine.
func (a *Aggregator) Engine() *Engine { return a.engine }

// Summary holds the per symbol reports and the portfolio totals.
type Summary struct {
	Reports []SymbolReport // sorted by symbol

	TotalCostBasis   Money
	TotalRealized    Money
	TotalUnrealized  Money // priced symbols only
	TotalMarketValue Money // priced symbols only
	NetPremium       Money
	Dividends        Money
	NetDeposits      Money

	// EstimatedAnnualDividends sums dividend rate x shares over symbols with a rate.
	EstimatedAnnualDividends Money

	// Unpriced lists open symbols without a quote. They are excluded from
	// value weighted totals.
	Unpriced []string
}

// Summary computes the report of every symbol and the portfolio totals.
func (a *Aggregator) Summary(quotes Quotes, rates DividendRates) Summary {
	l := a.engine.ledger
	zero := l.zero()
	s := Summary{
		TotalCostBasis:           zero,
		TotalRealized:            zero,
		TotalUnrealized:          zero,
		TotalMarketValue:         zero,
		NetPremium:               zero,
		Dividends:                zero,
		NetDeposits:              zero,
		EstimatedAnnualDividends: zero,
	}
	for _, symbol := range l.Symbols() {
		r := a.engine.Report(symbol, quotes, rates)
		s.Reports = append(s.Reports, r)

		s.TotalCostBasis = s.TotalCostBasis.Add(r.Position.CostBasis)
		s.TotalRealized = s.TotalRealized.Add(r.Realized)
		s.NetPremium = s.NetPremium.Add(r.Premiums.Net)
		s.Dividends = s.Dividends.Add(r.Dividends)
		if est, ok := r.EstimatedDividends.Get(); ok {
			s.EstimatedAnnualDividends = s.EstimatedAnnualDividends.Add(est)
		}
		if !r.Position.IsOpen() {
			continue
		}
		if !r.Price.IsSet() {
			s.Unpriced = append(s.Unpriced, symbol)
			continue
		}
		s.TotalUnrealized = s.TotalUnrealized.Add(r.Unrealized.Or(zero))
		s.TotalMarketValue = s.TotalMarketValue.Add(r.MarketValue.Or(zero))
	}

	for _, tx := range l.Transactions(ByKind(KindCapitalFlow)) {
		if tx.Action == ActionDeposit {
			s.NetDeposits = s.NetDeposits.Add(tx.Gross(a.engine.cfg.multiplier()))
		} else {
			s.NetDeposits = s.NetDeposits.Sub(tx.Gross(a.engine.cfg.multiplier()))
		}
	}
	if len(s.Unpriced) > 0 {
		a.engine.cfg.Logger.Debug().Strs("unpriced", s.Unpriced).Msg("symbols excluded from valuation")
	}
	return s
}

// marketValues returns the market value of every priced open symbol.
func (a *Aggregator) marketValues(quotes Quotes) map[string]Money {
	values := make(map[string]Money)
	l := a.engine.ledger
	for _, symbol := range l.Symbols() {
		price, ok := quotes.Price(symbol)
		if !ok || !l.compatible(price) {
			continue
		}
		if !a.engine.positions.CostBasis(symbol).IsOpen() {
			continue
		}
		values[symbol] = a.engine.positions.MarketValue(symbol, price).Or(l.zero())
	}
	return values
}

// Allocation returns the market value weight of every open symbol with a
// quote. Weights sum to 1; the map is empty when no symbol is priced.
func (a *Aggregator) Allocation(quotes Quotes) map[string]float64 {
	values := a.marketValues(quotes)
	return weights(values)
}

// weights normalizes values so that they sum to 1. Non positive totals return
// an empty map.
func weights(values map[string]Money) map[string]float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Decimal())
	}
	w := make(map[string]float64, len(values))
	if !total.IsPositive() {
		return w
	}
	for symbol, v := range values {
		w[symbol] = v.Decimal().Div(total).InexactFloat64()
	}
	return w
}

// Diversification measures the concentration of the open positions.
type Diversification struct {
	// Weights uses market value when priced, cost basis otherwise.
	Weights map[string]float64
	// Concentration is the Herfindahl index in percent: 100 for a single
	// position, 100/n for n equal positions.
	Concentration float64
}

// Reasonable reports a concentration below 50%.
func (d Diversification) Reasonable() bool { return d.Concentration < 50 }

// Diversification computes the concentration of the open positions. It is not
// available without open positions.
func (a *Aggregator) Diversification(quotes Quotes) Optional[Diversification] {
	l := a.engine.ledger
	values := make(map[string]Money)
	for _, symbol := range l.Symbols() {
		pos := a.engine.positions.CostBasis(symbol)
		if !pos.IsOpen() {
			continue
		}
		if price, ok := quotes.Price(symbol); ok && l.compatible(price) {
			values[symbol] = price.Mul(pos.Shares)
		} else {
			values[symbol] = pos.CostBasis
		}
	}
	w := weights(values)
	if len(w) == 0 {
		return None[Diversification]()
	}
	d := Diversification{Weights: w}
	for _, x := range w {
		d.Concentration += x * x * 100
	}
	return Some(d)
}

// RiskLevel grades the worst unrealized loss of the portfolio.
type RiskLevel string

const (
	RiskNone    RiskLevel = "no-position"
	RiskUnknown RiskLevel = "insufficient-data"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// Risk is the exposure of the portfolio to its worst position.
type Risk struct {
	Level RiskLevel
	// Worst is the priced open symbol with the lowest unrealized P&L.
	Worst string
	// Drawdown is the worst unrealized P&L over the cost basis of the priced
	// open positions.
	Drawdown Optional[Percent]
}

// Risk grades the portfolio: low above -10%, medium above -20%, high otherwise.
func (a *Aggregator) Risk(quotes Quotes) Risk {
	l := a.engine.ledger
	var (
		open      bool
		worst     string
		worstPnL  Money
		totalCost = l.zero()
	)
	for _, symbol := range l.Symbols() {
		pos := a.engine.positions.CostBasis(symbol)
		if !pos.IsOpen() {
			continue
		}
		open = true
		price, ok := quotes.Price(symbol)
		if !ok || !l.compatible(price) {
			continue
		}
		pnl := a.engine.positions.UnrealizedPnL(symbol, price).Or(l.zero())
		totalCost = totalCost.Add(pos.CostBasis)
		if worst == "" || pnl.LessThan(worstPnL) {
			worst, worstPnL = symbol, pnl
		}
	}
	switch {
	case !open:
		return Risk{Level: RiskNone}
	case worst == "" || !totalCost.IsPositive():
		return Risk{Level: RiskUnknown}
	}

	drawdown := percentOf(worstPnL.Decimal(), totalCost.Decimal())
	r := Risk{Worst: worst, Drawdown: Some(drawdown)}
	switch {
	case drawdown > -10:
		r.Level = RiskLow
	case drawdown > -20:
		r.Level = RiskMedium
	default:
		r.Level = RiskHigh
	}
	return r
}

// PremiumEfficiency returns the premium collected over the stock purchase
// cost of the whole ledger, in percent. Not available without stock cost.
func (a *Aggregator) PremiumEfficiency() Optional[Percent] {
	l := a.engine.ledger
	cost := l.zero()
	for _, symbol := range l.Symbols() {
		cost = cost.Add(a.engine.positions.StockCost(symbol))
	}
	if !cost.IsPositive() {
		return None[Percent]()
	}
	collected := a.engine.options.TotalPremiums().Collected
	return Some(percentOf(collected.Decimal(), cost.Decimal()))
}
