package renderer

import (
	"github.com/etnz/wheel"
)

// PayoffMarkdown renders the P&L at expiry of a symbol for a range of prices.
func PayoffMarkdown(symbol string, curve wheel.Optional[[]wheel.PayoffPoint]) string {
	r := newRenderer()
	r.Printf("# %s Payoff at Expiry\n\n", symbol)
	points, ok := curve.Get()
	switch {
	case !ok:
		r.Printf("Payoff not available: an open option leg has no strike, or prices are not in the ledger currency.\n")
		return r.String()
	case len(points) == 0:
		r.Printf("Payoff not available: the price range is empty.\n")
		return r.String()
	}
	r.table("rr", "Price", "P&L")
	for _, p := range points {
		price := p.Price.String()
		if p.Strike {
			price = "**" + price + "**"
		}
		r.row(price, p.PnL.SignedString())
	}
	return r.String()
}
