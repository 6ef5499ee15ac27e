package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wheel"
	"github.com/etnz/wheel/logging"
	"github.com/etnz/wheel/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSONL ledger into the database" }
func (*importCmd) Usage() string {
	return `wheelctl import [<file>]

  Reads transactions from a JSONL file (the configured ledger by default) and
  records them in the configured database. Nothing is recorded if any
  transaction is invalid.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	if s.DB == "" {
		fmt.Fprintln(os.Stderr, "Error: no database configured, set db in wheel.toml or WHEEL_DB")
		return subcommands.ExitFailure
	}
	filename := s.Ledger
	if f.NArg() == 1 {
		filename = f.Arg(0)
	}

	n, err := Import(ctx, s.DB, filename, s.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully imported %d transactions into %s\n", n, s.DB)
	return subcommands.ExitSuccess
}

// Import records the transactions of a JSONL file into the database at dbPath.
func Import(ctx context.Context, dbPath, filename string, logger zerolog.Logger) (int, error) {
	r, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	txs, err := wheel.DecodeTransactions(r)
	if err != nil {
		return 0, err
	}

	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	added, err := db.Add(ctx, txs...)
	if err != nil {
		return 0, err
	}
	for _, tx := range added {
		logging.LogTransaction(logger, tx)
	}
	return len(added), nil
}
