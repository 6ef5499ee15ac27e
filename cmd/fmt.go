package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wheel"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `wheelctl fmt

  Validates the ledger file. This command reads all transactions, validates
  them, sorts them by date, and writes them back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	content, err := os.ReadFile(s.Ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	formatted, err := Format(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledger %q: %v\n", s.Ledger, err)
		return subcommands.ExitFailure
	}
	if bytes.Equal(content, formatted) {
		fmt.Fprintf(os.Stderr, "Ledger %q is already formatted.\n", s.Ledger)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(s.Ledger, formatted, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger %q: %v\n", s.Ledger, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "✅ Successfully formatted ledger %q.\n", s.Ledger)
	return subcommands.ExitSuccess
}

// Format validates a JSONL ledger and returns it in canonical form.
func Format(content []byte) ([]byte, error) {
	ledger, err := wheel.DecodeLedger(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := wheel.EncodeLedger(&buf, ledger); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
