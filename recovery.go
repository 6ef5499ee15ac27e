package wheel

import "github.com/shopspring/decimal"

// weeksPerMonth converts weeks to months in recovery projections.
var weeksPerMonth = decimal.RequireFromString("4.33")

// Recovery is a linear projection of the time needed for option premium and
// dividends to pay back the stock purchase cost. It assumes future premium
// keeps coming at the historical weekly average; it is an extrapolation, not a
// forecast.
type Recovery struct {
	StockCost  Money // purchases and assignments, premiums ignored
	NetPremium Money
	Dividends  Money

	// RemainingBasis is StockCost - NetPremium - Dividends.
	RemainingBasis Money

	// ActiveWeeks spans the first to the last option transaction, at least one
	// week. Not available without option transactions.
	ActiveWeeks      Optional[decimal.Decimal]
	AvgWeeklyPremium Optional[Money]

	// WeeksToZero is not available unless both the weekly premium and the
	// remaining basis are positive.
	WeeksToZero  Optional[decimal.Decimal]
	MonthsToZero Optional[decimal.Decimal]

	// Progress is (NetPremium + Dividends) / StockCost, capped at 1. Not
	// available without stock cost.
	Progress Optional[decimal.Decimal]
}

// Recovered reports whether premium and dividends already cover the stock cost.
func (r Recovery) Recovered() bool {
	return r.StockCost.IsPositive() && !r.RemainingBasis.IsPositive()
}

// Recovery projects the recovery of the stock cost of symbol.
func (e *Engine) Recovery(symbol string) Recovery {
	r := Recovery{
		StockCost:  e.positions.StockCost(symbol),
		NetPremium: e.options.Premiums(symbol).Net,
		Dividends:  e.Dividends(symbol),
	}
	r.RemainingBasis = r.StockCost.Sub(r.NetPremium).Sub(r.Dividends)

	if r.StockCost.IsPositive() {
		progress := r.NetPremium.Add(r.Dividends).Ratio(r.StockCost)
		r.Progress = Some(decimal.Min(progress, decimal.NewFromInt(1)))
	}

	first, found := e.ledger.First(BySymbol(symbol), ByKind(KindOption))
	if !found {
		return r
	}
	last, _ := e.ledger.Last(BySymbol(symbol), ByKind(KindOption))
	weeks := decimal.NewFromInt(int64(last.Date.DaysSince(first.Date))).Div(decimal.NewFromInt(7))
	weeks = decimal.Max(weeks, decimal.NewFromInt(1))
	r.ActiveWeeks = Some(weeks)

	avg := r.NetPremium.Div(Q(weeks))
	r.AvgWeeklyPremium = Some(avg)

	if avg.IsPositive() && r.RemainingBasis.IsPositive() {
		toZero := r.RemainingBasis.Ratio(avg)
		r.WeeksToZero = Some(toZero)
		r.MonthsToZero = Some(toZero.Div(weeksPerMonth))
	}
	e.cfg.Logger.Debug().
		Str("symbol", symbol).
		Stringer("weeks", weeks).
		Stringer("avg_weekly", avg).
		Stringer("remaining", r.RemainingBasis).
		Msg("recovery projection")
	return r
}
