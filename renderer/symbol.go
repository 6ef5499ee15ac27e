package renderer

import (
	"fmt"

	"github.com/etnz/wheel"
)

// SymbolMarkdown renders the detailed report of a symbol.
func SymbolMarkdown(rep wheel.SymbolReport) string {
	r := newRenderer()
	r.Printf("# %s\n\n", rep.Symbol)
	r.Printf("State: **%s**\n\n", rep.State)

	r.Printf("## Position\n\n")
	r.table("lr", "Metric", "Value")
	r.row("Shares", rep.Position.Shares.String())
	r.row("Stock Cost", rep.StockCost.String())
	r.row("Cost Basis", rep.Position.CostBasis.String())
	r.row("Adjusted Cost", rep.Position.AdjustedCost.String())
	r.row("Price", optMoney(rep.Price))
	r.row("Market Value", optMoney(rep.MarketValue))
	r.row("Unrealized P&L", optSignedMoney(rep.Unrealized))
	r.row("Realized P&L", rep.Realized.SignedString())
	r.row("Fees", rep.Fees.String())
	r.row("Dividends", rep.Dividends.String())
	r.row("Estimated Annual Dividends", optMoney(rep.EstimatedDividends))
	r.Printf("\n")

	r.Printf("## Options\n\n")
	r.table("lr", "Metric", "Value")
	r.row("Net Puts", rep.Options.NetPuts.String())
	r.row("Net Calls", rep.Options.NetCalls.String())
	r.row("Premium Collected", rep.Premiums.Collected.String())
	r.row("Premium Paid", rep.Premiums.Paid.String())
	r.row("Net Premium", rep.Premiums.Net.SignedString())
	r.row("Annualized Return", optPercent(rep.AnnualizedReturn))
	r.Printf("\n")

	r.section("### Open Legs", func(b *mdRenderer) bool {
		if len(rep.OpenLegs) == 0 {
			return false
		}
		b.table("lrlrr", "Right", "Strike", "Expiry", "Contracts", "Net Cash")
		for _, leg := range rep.OpenLegs {
			strike, expiry := na, na
			if !leg.Strike.IsZero() {
				strike = leg.Strike.String()
			}
			if !leg.Expiry.IsZero() {
				expiry = leg.Expiry.String()
			}
			b.row(string(leg.Right), strike, expiry, leg.Contracts.String(), leg.NetCash.SignedString())
		}
		return true
	})

	renderRecovery(r, rep.Recovery)

	r.section("## Trades", func(b *mdRenderer) bool {
		if len(rep.Trades) == 0 {
			return false
		}
		b.table("llrrrrr", "Date", "Action", "Contracts", "Net", "Cumulative", "Return", "Annualized")
		for _, t := range rep.Trades {
			b.row(t.Date.String(), string(t.Action), t.Contracts.String(), t.Net.SignedString(), t.Cumulate.SignedString(),
				optPercent(t.Return), optPercent(t.Annualized))
		}
		if rate, ok := rep.Stats.WinRate.Get(); ok {
			b.Printf("\n%d trades, %d winners (%s), mean %s", rep.Stats.Count, rep.Stats.Wins, rate, optSignedMoney(rep.Stats.Mean))
			if sd, ok := rep.Stats.StdDev.Get(); ok {
				b.Printf(", standard deviation %s", sd)
			}
			b.Printf(".\n")
		}
		return true
	})

	r.section("## Cost Basis Timeline", func(b *mdRenderer) bool {
		if len(rep.Timeline) == 0 {
			return false
		}
		b.table("llr", "Date", "Action", "Adjusted Cost")
		for _, p := range rep.Timeline {
			b.row(p.Date.String(), string(p.Action), p.AdjustedCost.String())
		}
		return true
	})
	return r.String()
}

func renderRecovery(r *mdRenderer, rec wheel.Recovery) {
	if !rec.StockCost.IsPositive() {
		return
	}
	r.Printf("## Recovery\n\n")
	r.table("lr", "Metric", "Value")
	r.row("Remaining Basis", rec.RemainingBasis.String())
	if p, ok := rec.Progress.Get(); ok {
		r.row("Progress", wheel.Percent(p.InexactFloat64()*100).String())
	}
	r.row("Avg Weekly Premium", optSignedMoney(rec.AvgWeeklyPremium))
	switch weeks, ok := rec.WeeksToZero.Get(); {
	case rec.Recovered():
		r.row("Time to Zero", "recovered")
	case ok:
		months, _ := rec.MonthsToZero.Get()
		r.row("Time to Zero", fmt.Sprintf("%s weeks (%s months)", weeks.StringFixed(1), months.StringFixed(1)))
	default:
		r.row("Time to Zero", "cannot estimate")
	}
	r.Printf("\n_Linear extrapolation of the average weekly premium._\n\n")
}
