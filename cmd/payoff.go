package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wheel"
	"github.com/etnz/wheel/renderer"
	"github.com/google/subcommands"
)

type payoffCmd struct {
	low  float64
	high float64
	step float64
}

func (*payoffCmd) Name() string     { return "payoff" }
func (*payoffCmd) Synopsis() string { return "display the P&L of a symbol at option expiry" }
func (*payoffCmd) Usage() string {
	return `wheelctl payoff [-low <price>] [-high <price>] [-step <price>] <symbol>

  Displays the P&L of the position at expiry over a range of stock prices.
  Strikes of open option legs are always included. The range defaults to
  30% around the adjusted cost, or the strikes when the position is flat.
`
}

func (c *payoffCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.low, "low", 0, "Lowest stock price.")
	f.Float64Var(&c.high, "high", 0, "Highest stock price.")
	f.Float64Var(&c.step, "step", 1, "Price step.")
}

func (c *payoffCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.step <= 0 || c.low < 0 || (c.high > 0 && c.high < c.low) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := s.DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	e := wheel.NewEngine(ledger, s.Config(wheel.Today(), s.Logger()))
	currency := s.currencyOf(ledger)
	low, high := c.bounds(e, symbol, currency)
	curve := e.PayoffCurve(symbol, low, high, wheel.M(c.step, currency))
	printMarkdown(renderer.PayoffMarkdown(symbol, curve))
	return subcommands.ExitSuccess
}

// bounds returns the price range, derived from the position when flags are missing.
func (c *payoffCmd) bounds(e *wheel.Engine, symbol, currency string) (low, high wheel.Money) {
	low, high = wheel.M(c.low, currency), wheel.M(c.high, currency)
	if c.low > 0 && c.high > 0 {
		return low, high
	}

	center := e.Positions().CostBasis(symbol).AdjustedCost
	lo, hi := center.Mul(wheel.Q(0.7)), center.Mul(wheel.Q(1.3))
	for _, leg := range e.Options().OpenLegs(symbol) {
		if leg.Strike.IsZero() {
			continue
		}
		if lo.IsZero() || leg.Strike.Mul(wheel.Q(0.7)).LessThan(lo) {
			lo = leg.Strike.Mul(wheel.Q(0.7))
		}
		if leg.Strike.Mul(wheel.Q(1.3)).GreaterThan(hi) {
			hi = leg.Strike.Mul(wheel.Q(1.3))
		}
	}
	if c.low <= 0 {
		low = lo.Round(0)
	}
	if c.high <= 0 {
		high = hi.Round(0)
	}
	return low, high
}
