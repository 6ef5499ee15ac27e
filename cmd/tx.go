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

type txCmd struct {
	symbol string
	kind   string
	date   string
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `wheelctl tx [-s <symbol>] [-k <kind>] [-d <date>] [-tail <n>]

  Lists transactions from the ledger, optionally filtered by symbol, kind
  (stock, option, dividend, capital-flow) and end date.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Only list transactions of this symbol.")
	f.StringVar(&p.kind, "k", "", "Only list transactions of this kind.")
	f.StringVar(&p.date, "d", "", "Only list transactions up to this date.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []wheel.Filter
	if p.symbol != "" {
		filters = append(filters, wheel.BySymbol(strings.ToUpper(p.symbol)))
	}
	if p.kind != "" {
		filters = append(filters, wheel.ByKind(wheel.Kind(p.kind)))
	}
	if p.date != "" {
		on, err := wheel.ParseDate(p.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, wheel.Before(on))
	}

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

	transactions := ledger.Collect(filters...)
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}
