package wheel

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order, transactions
// on the same day keep their insertion order. A Ledger is only built from
// valid transactions, in a single currency, and never holds a short stock
// position.
type Ledger struct {
	transactions []Transaction
	currency     string
}

// NewLedger creates a ledger from transactions, in any order.
func NewLedger(txs ...Transaction) (*Ledger, error) {
	l := &Ledger{}
	if err := l.Append(txs...); err != nil {
		return nil, err
	}
	return l, nil
}

// Append validates and appends transactions to this ledger and maintains the
// chronological order of transactions. On error the ledger is left unchanged.
func (l *Ledger) Append(txs ...Transaction) error {
	currency := l.currency
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %s transaction on %v: %w", tx.Action, tx.Date, err)
		}
		cur := tx.Currency()
		if cur == "" {
			continue
		}
		if currency == "" {
			currency = cur
		}
		if cur != currency {
			return fmt.Errorf("%w: %s transaction on %v is in %s, ledger is in %s", ErrInvalidTransaction, tx.Action, tx.Date, cur, currency)
		}
	}

	all := make([]Transaction, 0, len(l.transactions)+len(txs))
	all = append(all, l.transactions...)
	all = append(all, txs...)
	stableSort(all)
	if err := checkLongOnly(all); err != nil {
		return err
	}

	l.transactions = all
	l.currency = currency
	return nil
}

// stableSort sorts transactions by date, preserving insertion order on the same day.
func stableSort(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

// checkLongOnly replays stock transactions and fails if a symbol would hold
// a negative number of shares.
func checkLongOnly(txs []Transaction) error {
	shares := make(map[string]Quantity)
	for _, tx := range txs {
		if tx.Kind() != KindStock {
			continue
		}
		delta := tx.Quantity
		if tx.Action.Direction() < 0 {
			delta = delta.Neg()
		}
		held := shares[tx.Symbol].Add(delta)
		if held.IsNegative() {
			return fmt.Errorf("%w: %s %v %s on %v leaves %v shares", ErrInvalidTransaction, tx.Action, tx.Quantity, tx.Symbol, tx.Date, held)
		}
		shares[tx.Symbol] = held
	}
	return nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Currency returns the ledger currency, "" if no transaction carries one.
func (l *Ledger) Currency() string { return l.currency }

// Filter selects transactions.
type Filter func(Transaction) bool

// BySymbol selects the transactions of a symbol.
func BySymbol(symbol string) Filter {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// ByKind selects the transactions of any of the given kinds.
func ByKind(kinds ...Kind) Filter {
	return func(tx Transaction) bool { return slices.Contains(kinds, tx.Kind()) }
}

// Before selects transactions up to (and including) a date.
func Before(on Date) Filter {
	return func(tx Transaction) bool { return !tx.Date.After(on) }
}

// Transactions returns an iterator over the transactions matching all filters,
// in chronological order.
func (l *Ledger) Transactions(filters ...Filter) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, f := range filters {
				if !f(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Collect returns a copy of the transactions matching all filters.
func (l *Ledger) Collect(filters ...Filter) []Transaction {
	var txs []Transaction
	for _, tx := range l.Transactions(filters...) {
		txs = append(txs, tx)
	}
	return txs
}

// Symbols returns the sorted list of symbols that appear in the ledger.
func (l *Ledger) Symbols() []string {
	var symbols []string
	for _, tx := range l.transactions {
		if tx.Symbol != "" && !slices.Contains(symbols, tx.Symbol) {
			symbols = append(symbols, tx.Symbol)
		}
	}
	slices.Sort(symbols)
	return symbols
}

// First returns the first transaction matching all filters.
func (l *Ledger) First(filters ...Filter) (Transaction, bool) {
	for _, tx := range l.Transactions(filters...) {
		return tx, true
	}
	return Transaction{}, false
}

// Last returns the last transaction matching all filters.
func (l *Ledger) Last(filters ...Filter) (Transaction, bool) {
	var last Transaction
	found := false
	for _, tx := range l.Transactions(filters...) {
		last, found = tx, true
	}
	return last, found
}

// Until returns the ledger of the transactions up to (and including) a date.
func (l *Ledger) Until(on Date) *Ledger {
	return &Ledger{transactions: l.Collect(Before(on)), currency: l.currency}
}

// zero returns a zero amount in the ledger currency.
func (l *Ledger) zero() Money { return M(0, l.currency) }
