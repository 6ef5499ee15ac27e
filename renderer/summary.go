package renderer

import (
	"slices"
	"strings"

	"github.com/etnz/wheel"
)

// Portfolio gathers the portfolio level results to render.
type Portfolio struct {
	Date              wheel.Date
	Summary           wheel.Summary
	Allocation        map[string]float64
	Diversification   wheel.Optional[wheel.Diversification]
	Risk              wheel.Risk
	PremiumEfficiency wheel.Optional[wheel.Percent]
}

// SummaryMarkdown renders the portfolio summary: totals, one row per symbol,
// allocation and risk.
func SummaryMarkdown(p Portfolio) string {
	r := newRenderer()
	s := p.Summary

	r.Printf("# Wheel Summary on %s\n\n", p.Date)

	r.Printf("## Totals\n\n")
	r.table("lr", "Metric", "Value")
	r.row("Cost Basis", s.TotalCostBasis.String())
	r.row("Market Value", s.TotalMarketValue.String())
	r.row("Unrealized P&L", s.TotalUnrealized.SignedString())
	r.row("Realized P&L", s.TotalRealized.SignedString())
	r.row("Net Premium", s.NetPremium.SignedString())
	r.row("Dividends", s.Dividends.String())
	r.row("Net Deposits", s.NetDeposits.String())
	r.row("Estimated Annual Dividends", s.EstimatedAnnualDividends.String())
	r.row("Premium Efficiency", optPercent(p.PremiumEfficiency))
	r.Printf("\n")

	if len(s.Reports) > 0 {
		r.Printf("## Positions\n\n")
		r.table("llrrrrrr", "Symbol", "State", "Shares", "Adj. Cost", "Price", "Unrealized", "Net Premium", "Realized")
		for _, rep := range s.Reports {
			r.row(
				rep.Symbol,
				string(rep.State),
				rep.Position.Shares.String(),
				rep.Position.AdjustedCost.String(),
				optMoney(rep.Price),
				optSignedMoney(rep.Unrealized),
				rep.Premiums.Net.SignedString(),
				rep.Realized.SignedString(),
			)
		}
		r.Printf("\n")
	}

	r.section("## Allocation", func(b *mdRenderer) bool {
		if len(p.Allocation) == 0 {
			return false
		}
		b.table("lr", "Symbol", "Weight")
		symbols := make([]string, 0, len(p.Allocation))
		for symbol := range p.Allocation {
			symbols = append(symbols, symbol)
		}
		slices.Sort(symbols)
		for _, symbol := range symbols {
			b.row(symbol, wheel.Percent(p.Allocation[symbol]*100).String())
		}
		return true
	})

	r.Printf("## Risk\n\n")
	r.Printf("- Risk level: **%s**", p.Risk.Level)
	if dd, ok := p.Risk.Drawdown.Get(); ok {
		r.Printf(" (worst position %s at %s)", p.Risk.Worst, dd.SignedString())
	}
	r.Printf("\n")
	if d, ok := p.Diversification.Get(); ok {
		verdict := "concentrated"
		if d.Reasonable() {
			verdict = "reasonable"
		}
		r.Printf("- Concentration: %.1f%% (%s)\n", d.Concentration, verdict)
	}
	if len(s.Unpriced) > 0 {
		r.Printf("- Without quote: %s\n", strings.Join(s.Unpriced, ", "))
	}
	return r.String()
}
