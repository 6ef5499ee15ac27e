package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wheel"
	"github.com/etnz/wheel/logging"
	"github.com/etnz/wheel/store"
	"github.com/google/subcommands"
)

type addCmd struct {
	date     string
	action   string
	symbol   string
	quantity float64
	price    float64
	fees     float64
	strike   float64
	expiry   string
	memo     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction in the ledger" }
func (*addCmd) Usage() string {
	return `wheelctl add -a <action> [-d <date>] [-s <symbol>] -q <quantity> -p <price> [-fees <fees>] [-strike <strike> -expiry <date>] [-m <memo>]

  Validates a transaction against the ledger and records it. Options take the
  number of contracts as quantity and the premium per share as price. Deposits
  and withdrawals take the amount as price.

Usage Examples:
$ wheelctl add -a buy -s XYZ -q 100 -p 110 -fees 1
$ wheelctl add -a sell-call -s XYZ -q 1 -p 1.5 -strike 115 -expiry 2025-02-21
$ wheelctl add -a deposit -p 10000
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", wheel.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.action, "a", "", "Action: "+actionList())
	f.StringVar(&c.symbol, "s", "", "Symbol, not used for deposits and withdrawals")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares or contracts")
	f.Float64Var(&c.price, "p", 0, "Price per share, or amount of a deposit or withdrawal")
	f.Float64Var(&c.fees, "fees", 0, "Fees charged for the transaction")
	f.Float64Var(&c.strike, "strike", 0, "Option strike")
	f.StringVar(&c.expiry, "expiry", "", "Option expiry date")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func actionList() string {
	names := make([]string, len(wheel.Actions))
	for i, a := range wheel.Actions {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// transaction builds the transaction from the flags. It is not validated.
func (c *addCmd) transaction(currency string) (wheel.Transaction, error) {
	action, err := wheel.ParseAction(c.action)
	if err != nil {
		return wheel.Transaction{}, err
	}
	day, err := wheel.ParseDate(c.date)
	if err != nil {
		return wheel.Transaction{}, fmt.Errorf("invalid date: %w", err)
	}

	var tx wheel.Transaction
	if action.Kind() == wheel.KindCapitalFlow {
		amount := wheel.M(c.price, currency)
		if action == wheel.ActionDeposit {
			tx = wheel.NewDeposit(day, amount)
		} else {
			tx = wheel.NewWithdraw(day, amount)
		}
	} else {
		tx = wheel.NewTransaction(day, action, strings.ToUpper(c.symbol), wheel.Q(c.quantity), wheel.M(c.price, currency))
	}

	tx = tx.WithFees(wheel.M(c.fees, currency)).WithMemo(c.memo)
	if c.strike != 0 {
		tx = tx.WithStrike(wheel.M(c.strike, currency))
	}
	if c.expiry != "" {
		expiry, err := wheel.ParseDate(c.expiry)
		if err != nil {
			return wheel.Transaction{}, fmt.Errorf("invalid expiry: %w", err)
		}
		tx = tx.WithExpiry(expiry)
	}
	return tx, nil
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.action == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	s, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := s.Logger()

	tx, err := c.transaction(s.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if s.DB != "" {
		db, err := store.NewSQLiteStore(s.DB)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer db.Close()
		added, err := db.Add(ctx, tx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
			return subcommands.ExitFailure
		}
		logging.LogTransaction(logger, added[0])
		fmt.Printf("Successfully recorded transaction %s in %s\n", added[0].ID, s.DB)
		return subcommands.ExitSuccess
	}

	// the whole ledger must remain valid, a sell cannot exceed the shares held.
	ledger, err := s.DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Append(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := appendTransaction(s.Ledger, tx)
	if status == subcommands.ExitSuccess {
		logging.LogTransaction(logger, tx)
	}
	return status
}

// appendTransaction appends a transaction to the specified ledger file.
func appendTransaction(filename string, tx wheel.Transaction) subcommands.ExitStatus {
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := wheel.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}
