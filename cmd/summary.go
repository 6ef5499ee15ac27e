package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wheel"
	"github.com/etnz/wheel/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date    string
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the wheel portfolio summary" }
func (*summaryCmd) Usage() string {
	return `wheelctl summary [-d <date>] [-offline]

  Displays a summary of the portfolio: totals, one row per symbol, allocation and risk.
  Quotes are fetched from the configured quote URL unless -offline is set.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", wheel.Today().String(), "Date for the summary. See the user manual for supported date formats.")
	f.BoolVar(&c.offline, "offline", false, "Do not fetch quotes.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	logger := s.Logger()

	ledger, err := s.DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// transactions after the report date are ignored.
	ledger = ledger.Until(on)

	var quotes wheel.Quotes
	if !c.offline {
		quotes = s.fetchQuotes(ctx, logger, ledger.Symbols()...)
	}

	a := wheel.NewAggregator(ledger, s.Config(on, logger))
	printMarkdown(renderer.SummaryMarkdown(renderer.Portfolio{
		Date:              on,
		Summary:           a.Summary(quotes, s.DividendRates()),
		Allocation:        a.Allocation(quotes),
		Diversification:   a.Diversification(quotes),
		Risk:              a.Risk(quotes),
		PremiumEfficiency: a.PremiumEfficiency(),
	}))

	return subcommands.ExitSuccess
}
