package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wheel"
	"github.com/etnz/wheel/logging"
	"github.com/etnz/wheel/renderer"
	"github.com/google/subcommands"
)

type symbolCmd struct {
	date    string
	price   float64
	offline bool
}

func (*symbolCmd) Name() string     { return "symbol" }
func (*symbolCmd) Synopsis() string { return "display the wheel detail of a symbol" }
func (*symbolCmd) Usage() string {
	return `wheelctl symbol [-d <date>] [-p <price>] [-offline] <symbol>

  Displays the cycle state, cost basis, premiums, open option legs, recovery
  estimate, trade series and cost basis timeline of a symbol.
`
}

func (c *symbolCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", wheel.Today().String(), "Evaluation date.")
	f.Float64Var(&c.price, "p", 0, "Current price per share, fetched when missing.")
	f.BoolVar(&c.offline, "offline", false, "Do not fetch quotes.")
}

func (c *symbolCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	on, err := wheel.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := logging.WithSymbol(s.Logger(), symbol)

	ledger, err := s.DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// transactions after the report date are ignored.
	ledger = ledger.Until(on)

	quotes := wheel.Quotes{}
	switch {
	case c.price > 0:
		quotes[symbol] = wheel.M(c.price, s.currencyOf(ledger))
	case !c.offline:
		quotes = s.fetchQuotes(ctx, logger, symbol)
	}

	e := wheel.NewEngine(ledger, s.Config(on, logger))
	printMarkdown(renderer.SymbolMarkdown(e.Report(symbol, quotes, s.DividendRates())))
	return subcommands.ExitSuccess
}
