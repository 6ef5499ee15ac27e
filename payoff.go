package wheel

import "slices"

// PayoffAtExpiry returns the total P&L of symbol if the underlying is at price
// when every open option leg expires: realized stock result plus the shares
// marked at price, the intrinsic value of the open legs and the net premium,
// minus fees.
//
// It is not available when an open leg carries no strike, or when price is
// in another currency than the ledger.
func (e *Engine) PayoffAtExpiry(symbol string, price Money) Optional[Money] {
	if !e.ledger.compatible(price) {
		return None[Money]()
	}
	legs := e.options.OpenLegs(symbol)
	for _, leg := range legs {
		if leg.Strike.IsZero() {
			return None[Money]()
		}
	}

	c := e.positions.terms(symbol)
	total := c.stockProceeds.
		Sub(c.stockBuyCost).
		Add(price.Mul(c.shares)).
		Add(c.premiumNet).
		Sub(c.fees)
	for _, leg := range legs {
		total = total.Add(leg.Intrinsic(price, e.cfg.multiplier()))
	}
	return Some(total)
}

// PayoffPoint is the P&L at expiry for one underlying price.
type PayoffPoint struct {
	Price  Money
	PnL    Money
	Strike bool // Price is the strike of an open leg
}

// PayoffCurve returns PayoffAtExpiry for every price from low to high by
// step, plus the strikes of the open legs in that range, sorted by price.
//
// The curve is not available when PayoffAtExpiry is not. An empty range
// (step not positive or high below low) returns an available empty curve.
func (e *Engine) PayoffCurve(symbol string, low, high, step Money) Optional[[]PayoffPoint] {
	if _, ok := e.PayoffAtExpiry(symbol, low).Get(); !ok {
		return None[[]PayoffPoint]()
	}
	if !step.IsPositive() || high.LessThan(low) {
		return Some([]PayoffPoint{})
	}

	var strikes []Money
	for _, leg := range e.options.OpenLegs(symbol) {
		if !containsMoney(strikes, leg.Strike) {
			strikes = append(strikes, leg.Strike)
		}
	}

	var points []PayoffPoint
	add := func(p Money, isStrike bool) {
		pnl, _ := e.PayoffAtExpiry(symbol, p).Get()
		points = append(points, PayoffPoint{Price: p, PnL: pnl, Strike: isStrike})
	}
	for p := low; !high.LessThan(p); p = p.Add(step) {
		add(p, containsMoney(strikes, p))
	}
	for _, k := range strikes {
		if !k.LessThan(low) && !high.LessThan(k) && !containsPoint(points, k) {
			add(k, true)
		}
	}
	slices.SortStableFunc(points, func(a, b PayoffPoint) int {
		return a.Price.Decimal().Cmp(b.Price.Decimal())
	})
	return Some(points)
}

func containsMoney(list []Money, m Money) bool {
	for _, x := range list {
		if x.Equal(m) {
			return true
		}
	}
	return false
}

func containsPoint(points []PayoffPoint, m Money) bool {
	for _, p := range points {
		if p.Price.Equal(m) {
			return true
		}
	}
	return false
}
