package wheel

// PositionState is the stock position of a symbol after replaying its
// transactions. AdjustedCost * Shares == CostBasis when Shares > 0, and
// everything is zero when the position is flat.
type PositionState struct {
	Shares       Quantity
	CostBasis    Money // stock cost net of option premium, plus fees
	AdjustedCost Money // per share
}

// IsOpen reports whether shares are held.
func (p PositionState) IsOpen() bool { return p.Shares.IsPositive() }

// CostTimelinePoint is the adjusted cost per share right after a transaction.
type CostTimelinePoint struct {
	Date         Date
	AdjustedCost Money
	Action       Action
}

// PositionLedger computes the adjusted cost basis and P&L of stock positions.
type PositionLedger struct {
	ledger  *Ledger
	cfg     Config
	options *OptionLedger
}

// NewPositionLedger returns a PositionLedger reading l.
func NewPositionLedger(l *Ledger, cfg Config) *PositionLedger {
	return &PositionLedger{ledger: l, cfg: cfg, options: NewOptionLedger(l, cfg)}
}

// costBasisTerms accumulates the terms of the adjusted cost basis formula.
type costBasisTerms struct {
	stockBuyCost  Money    // purchases and assignments
	stockProceeds Money    // sales and called away
	premiumNet    Money    // collected - paid
	fees          Money    // stock and option fees
	shares        Quantity // bought - sold
}

func (p *PositionLedger) newTerms() costBasisTerms {
	zero := p.ledger.zero()
	return costBasisTerms{stockBuyCost: zero, stockProceeds: zero, premiumNet: zero, fees: zero}
}

// add folds one transaction into the terms.
func (c *costBasisTerms) add(tx Transaction, multiplier Quantity) {
	switch tx.Kind() {
	case KindStock:
		gross := tx.Gross(multiplier)
		if tx.Action.Direction() > 0 {
			c.stockBuyCost = c.stockBuyCost.Add(gross)
			c.shares = c.shares.Add(tx.Quantity)
		} else {
			c.stockProceeds = c.stockProceeds.Add(gross)
			c.shares = c.shares.Sub(tx.Quantity)
		}
		c.fees = c.fees.Add(tx.Fees)
	case KindOption:
		c.premiumNet = c.premiumNet.Sub(tx.SignedAmount(multiplier))
		c.fees = c.fees.Add(tx.Fees)
	}
}

// state applies the adjusted cost basis formula.
func (c costBasisTerms) state() PositionState {
	if !c.shares.IsPositive() {
		zero := M(0, c.stockBuyCost.Currency())
		return PositionState{Shares: Q(0), CostBasis: zero, AdjustedCost: zero}
	}
	basis := c.stockBuyCost.Sub(c.premiumNet).Add(c.fees)
	return PositionState{
		Shares:       c.shares,
		CostBasis:    basis,
		AdjustedCost: basis.Div(c.shares),
	}
}

func (p *PositionLedger) terms(symbol string) costBasisTerms {
	c := p.newTerms()
	for _, tx := range p.ledger.Transactions(BySymbol(symbol)) {
		c.add(tx, p.cfg.multiplier())
	}
	return c
}

// CostBasis returns the position of symbol. The cost basis is the stock
// purchase cost, minus the net option premium, plus the fees of every stock
// and option transaction. A flat position reports zero.
func (p *PositionLedger) CostBasis(symbol string) PositionState {
	return p.terms(symbol).state()
}

// StockCost returns the purchase cost of symbol ignoring premiums and fees.
func (p *PositionLedger) StockCost(symbol string) Money {
	return p.terms(symbol).stockBuyCost
}

// Fees returns the fees paid on the stock and option transactions of symbol.
func (p *PositionLedger) Fees(symbol string) Money {
	return p.terms(symbol).fees
}

// RealizedPnL returns the stock sale proceeds minus the stock purchase cost,
// plus the net option cash flow, minus fees.
func (p *PositionLedger) RealizedPnL(symbol string) Money {
	c := p.terms(symbol)
	return c.stockProceeds.Sub(c.stockBuyCost).Add(p.options.PnL(symbol)).Sub(c.fees)
}

// TotalRealizedPnL returns the realized P&L summed over every symbol.
func (p *PositionLedger) TotalRealizedPnL() Money {
	total := p.ledger.zero()
	for _, symbol := range p.ledger.Symbols() {
		total = total.Add(p.RealizedPnL(symbol))
	}
	return total
}

// UnrealizedPnL returns Shares * price - CostBasis, zero when flat. It is not
// available for a price in another currency than the ledger.
func (p *PositionLedger) UnrealizedPnL(symbol string, price Money) Optional[Money] {
	if !p.ledger.compatible(price) {
		return None[Money]()
	}
	s := p.CostBasis(symbol)
	if !s.IsOpen() {
		return Some(p.ledger.zero())
	}
	return Some(price.Mul(s.Shares).Sub(s.CostBasis))
}

// MarketValue returns Shares * price. It is not available for a price in
// another currency than the ledger.
func (p *PositionLedger) MarketValue(symbol string, price Money) Optional[Money] {
	if !p.ledger.compatible(price) {
		return None[Money]()
	}
	s := p.CostBasis(symbol)
	if !s.IsOpen() {
		return Some(p.ledger.zero())
	}
	return Some(price.Mul(s.Shares))
}

// CostTimeline replays the transactions of symbol and returns the adjusted
// cost per share after each transaction that leaves shares held.
func (p *PositionLedger) CostTimeline(symbol string) []CostTimelinePoint {
	var points []CostTimelinePoint
	c := p.newTerms()
	for _, tx := range p.ledger.Transactions(BySymbol(symbol)) {
		c.add(tx, p.cfg.multiplier())
		s := c.state()
		if !s.IsOpen() {
			continue
		}
		points = append(points, CostTimelinePoint{Date: tx.Date, AdjustedCost: s.AdjustedCost, Action: tx.Action})
	}
	return points
}
