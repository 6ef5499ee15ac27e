package wheel

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// TradePnL is the cash result of a single option transaction.
type TradePnL struct {
	Date      Date
	Action    Action
	Strike    Money
	Expiry    Date
	Contracts Quantity
	Premium   Money // premium x contracts x multiplier
	Fees      Money
	Net       Money // premium - fees for income, -(premium + fees) otherwise
	Cumulate  Money // running sum of Net

	// Days counts from the first stock purchase (or the first transaction of
	// the symbol without one) to the trade, at least one.
	Days int
	// Return and Annualized are measured against the stock purchase cost,
	// not the adjusted cost. Not available without stock cost.
	Return     Optional[Percent]
	Annualized Optional[Percent]
}

// TradeSeries returns one TradePnL per option transaction of symbol, in order.
func (e *Engine) TradeSeries(symbol string) []TradePnL {
	stockCost := e.positions.StockCost(symbol)
	start, found := e.ledger.First(BySymbol(symbol), isPurchase)
	if !found {
		start, _ = e.ledger.First(BySymbol(symbol))
	}

	var series []TradePnL
	cumulate := e.ledger.zero()
	for _, tx := range e.ledger.Transactions(BySymbol(symbol), ByKind(KindOption)) {
		premium := tx.Gross(e.cfg.multiplier())
		net := premium.Sub(tx.Fees)
		if !tx.Action.IsIncome() {
			net = premium.Add(tx.Fees).Neg()
		}
		cumulate = cumulate.Add(net)

		t := TradePnL{
			Date:      tx.Date,
			Action:    tx.Action,
			Strike:    tx.Strike,
			Expiry:    tx.Expiry,
			Contracts: tx.Quantity,
			Premium:   premium,
			Fees:      tx.Fees,
			Net:       net,
			Cumulate:  cumulate,
			Days:      max(tx.Date.DaysSince(start.Date), 1),
		}
		if stockCost.IsPositive() {
			ret := percentOf(net.Decimal(), stockCost.Decimal())
			t.Return = Some(ret)
			t.Annualized = Some(ret * 365 / Percent(t.Days))
		}
		series = append(series, t)
	}
	return series
}

// isPurchase selects stock purchases and assignments.
func isPurchase(tx Transaction) bool {
	return tx.Kind() == KindStock && tx.Action.Direction() > 0
}

// TradeStats summarizes the trade series of a symbol.
type TradeStats struct {
	Count   int
	Wins    int // trades with a positive net cash flow
	WinRate Optional[Percent]
	Mean    Optional[Money]
	StdDev  Optional[Money] // sample standard deviation, needs two trades
	Best    Optional[Money]
	Worst   Optional[Money]
}

// TradeStats computes statistics over the trade series of symbol.
func (e *Engine) TradeStats(symbol string) TradeStats {
	series := e.TradeSeries(symbol)
	s := TradeStats{Count: len(series)}
	if len(series) == 0 {
		return s
	}

	cur := e.ledger.Currency()
	nets := make([]float64, len(series))
	best, worst := series[0].Net, series[0].Net
	for i, t := range series {
		nets[i] = t.Net.AsFloat()
		if t.Net.IsPositive() {
			s.Wins++
		}
		best = best.Max(t.Net)
		if t.Net.LessThan(worst) {
			worst = t.Net
		}
	}
	s.WinRate = Some(percentOf(decimal.NewFromInt(int64(s.Wins)), decimal.NewFromInt(int64(s.Count))))
	s.Mean = Some(M(stat.Mean(nets, nil), cur).Round(2))
	if len(nets) > 1 {
		s.StdDev = Some(M(stat.StdDev(nets, nil), cur).Round(2))
	}
	s.Best = Some(best)
	s.Worst = Some(worst)
	return s
}
