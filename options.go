package wheel

import (
	"slices"
	"strings"
)

// OptionPositionSummary holds the net number of contracts per leg type for a
// symbol: positive when long, negative when short.
type OptionPositionSummary struct {
	NetPuts  Quantity
	NetCalls Quantity
}

// PremiumSummary holds the premium collected by writing options and the
// premium paid buying them. Net is always Collected - Paid.
type PremiumSummary struct {
	Collected Money
	Paid      Money
	Net       Money
}

// OptionLeg is an open option exposure: every option transaction with the
// same right, strike and expiry.
type OptionLeg struct {
	Right     Right
	Strike    Money    // zero when the transactions carry no strike
	Expiry    Date     // zero when the transactions carry no expiry
	Contracts Quantity // signed, + long, - short
	NetCash   Money    // premium received minus premium paid, fees excluded
}

// AvgPremium returns the net cash per covered share. Zero when flat.
func (l OptionLeg) AvgPremium(multiplier Quantity) Money {
	if l.Contracts.IsZero() {
		return M(0, l.NetCash.Currency())
	}
	return l.NetCash.Div(l.Contracts.Mul(multiplier)).Abs()
}

// Intrinsic returns the signed value of the leg if it expires with the
// underlying at price: long legs are worth their intrinsic value, short legs
// owe it.
func (l OptionLeg) Intrinsic(price Money, multiplier Quantity) Money {
	var perShare Money
	switch l.Right {
	case Call:
		perShare = price.Sub(l.Strike)
	case Put:
		perShare = l.Strike.Sub(price)
	}
	perShare = perShare.Max(M(0, perShare.Currency()))
	return perShare.Mul(l.Contracts).Mul(multiplier)
}

// OptionLedger reduces the option transactions of a ledger to premium and leg
// summaries.
type OptionLedger struct {
	ledger *Ledger
	cfg    Config
}

// NewOptionLedger returns an OptionLedger reading l.
func NewOptionLedger(l *Ledger, cfg Config) *OptionLedger {
	return &OptionLedger{ledger: l, cfg: cfg}
}

// Positions returns the net contracts per leg type for symbol. A symbol
// without option transactions returns zero contracts.
func (o *OptionLedger) Positions(symbol string) OptionPositionSummary {
	var s OptionPositionSummary
	for _, tx := range o.ledger.Transactions(BySymbol(symbol), ByKind(KindOption)) {
		delta := tx.Quantity
		if tx.Action.Direction() < 0 {
			delta = delta.Neg()
		}
		switch tx.Action.Right() {
		case Put:
			s.NetPuts = s.NetPuts.Add(delta)
		case Call:
			s.NetCalls = s.NetCalls.Add(delta)
		}
	}
	return s
}

// Premiums returns the premium collected and paid on symbol.
func (o *OptionLedger) Premiums(symbol string) PremiumSummary {
	return o.premiums(BySymbol(symbol))
}

// TotalPremiums returns the premium collected and paid over the whole ledger.
func (o *OptionLedger) TotalPremiums() PremiumSummary {
	return o.premiums()
}

func (o *OptionLedger) premiums(filters ...Filter) PremiumSummary {
	s := PremiumSummary{
		Collected: o.ledger.zero(),
		Paid:      o.ledger.zero(),
	}
	filters = append(filters, ByKind(KindOption))
	for _, tx := range o.ledger.Transactions(filters...) {
		gross := tx.Gross(o.cfg.multiplier())
		if tx.Action.IsIncome() {
			s.Collected = s.Collected.Add(gross)
		} else {
			s.Paid = s.Paid.Add(gross)
		}
	}
	s.Net = s.Collected.Sub(s.Paid)
	return s
}

// PnL returns the net option cash flow for symbol, fees excluded:
// the opposite of the sum of signed amounts.
func (o *OptionLedger) PnL(symbol string) Money {
	total := o.ledger.zero()
	for _, tx := range o.ledger.Transactions(BySymbol(symbol), ByKind(KindOption)) {
		total = total.Sub(tx.SignedAmount(o.cfg.multiplier()))
	}
	return total
}

// OpenLegs returns the legs of symbol with a non zero net position, ordered
// by expiry, right and strike.
func (o *OptionLedger) OpenLegs(symbol string) []OptionLeg {
	var legs []OptionLeg
	find := func(tx Transaction) int {
		return slices.IndexFunc(legs, func(l OptionLeg) bool {
			return l.Right == tx.Action.Right() && l.Strike.Equal(tx.Strike) && l.Expiry == tx.Expiry
		})
	}
	for _, tx := range o.ledger.Transactions(BySymbol(symbol), ByKind(KindOption)) {
		i := find(tx)
		if i < 0 {
			legs = append(legs, OptionLeg{
				Right:   tx.Action.Right(),
				Strike:  tx.Strike,
				Expiry:  tx.Expiry,
				NetCash: o.ledger.zero(),
			})
			i = len(legs) - 1
		}
		delta := tx.Quantity
		if tx.Action.Direction() < 0 {
			delta = delta.Neg()
		}
		legs[i].Contracts = legs[i].Contracts.Add(delta)
		legs[i].NetCash = legs[i].NetCash.Sub(tx.SignedAmount(o.cfg.multiplier()))
	}

	legs = slices.DeleteFunc(legs, func(l OptionLeg) bool { return l.Contracts.IsZero() })
	slices.SortStableFunc(legs, func(a, b OptionLeg) int {
		switch {
		case a.Expiry.Before(b.Expiry):
			return -1
		case a.Expiry.After(b.Expiry):
			return 1
		}
		if c := strings.Compare(string(a.Right), string(b.Right)); c != 0 {
			return c
		}
		return a.Strike.Decimal().Cmp(b.Strike.Decimal())
	})
	o.cfg.Logger.Debug().Str("symbol", symbol).Int("legs", len(legs)).Msg("open option legs")
	return legs
}
