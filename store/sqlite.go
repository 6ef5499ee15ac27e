// Package store persists ledger transactions in SQLite, one row per
// transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/wheel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLiteStore stores transactions in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// quoted returns 'a', 'b', ... for a SQL IN clause.
func quoted[T ~string](values ...T) string {
	q := make([]string, len(values))
	for i, v := range values {
		q[i] = "'" + string(v) + "'"
	}
	return strings.Join(q, ", ")
}

// initSchema creates the transactions table. action and category are
// restricted to the known values.
func (s *SQLiteStore) initSchema() error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		date TEXT NOT NULL,
		action TEXT NOT NULL CHECK (action IN (%s)),
		category TEXT NOT NULL CHECK (category IN (%s)),
		symbol TEXT NOT NULL DEFAULT '',
		quantity TEXT NOT NULL,
		price TEXT NOT NULL,
		fees TEXT NOT NULL DEFAULT '0',
		currency TEXT NOT NULL DEFAULT '',
		strike TEXT NOT NULL DEFAULT '',
		expiry TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	`,
		quoted(wheel.Actions...),
		quoted(wheel.CategoryTrading, wheel.CategoryInvestment),
	)
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add validates and saves transactions. Transactions without ID get a new
// one. The whole batch is rejected if the resulting ledger would be invalid.
func (s *SQLiteStore) Add(ctx context.Context, txs ...wheel.Transaction) ([]wheel.Transaction, error) {
	if len(txs) == 0 {
		return nil, nil
	}
	existing, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	if _, err := wheel.NewLedger(append(existing, txs...)...); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, action, category, symbol, quantity, price, fees, currency, strike, expiry, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	saved := make([]wheel.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID == "" {
			t = t.WithID(uuid.NewString())
		}
		strike, expiry := "", ""
		if !t.Strike.IsZero() {
			strike = t.Strike.Decimal().String()
		}
		if !t.Expiry.IsZero() {
			expiry = t.Expiry.String()
		}
		_, err := stmt.ExecContext(ctx,
			t.ID, t.Date.String(), string(t.Action), string(t.Action.Category()), t.Symbol,
			t.Quantity.Decimal().String(), t.Price.Decimal().String(), t.Fees.Decimal().String(),
			t.Currency(), strike, expiry, t.Memo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert %s transaction on %v: %w", t.Action, t.Date, err)
		}
		saved = append(saved, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// Filter selects stored transactions. Zero fields match everything.
type Filter struct {
	Symbol   string
	Category wheel.Category
	From, To wheel.Date // inclusive
}

// List returns the stored transactions matching filter, in date then
// insertion order. Rows that are not valid transactions are reported as
// errors.
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]wheel.Transaction, error) {
	query := "SELECT id, date, action, symbol, quantity, price, fees, currency, strike, expiry, memo FROM transactions WHERE 1=1"
	args := []any{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.To.String())
	}
	query += " ORDER BY date, seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []wheel.Transaction
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.date, &r.action, &r.symbol, &r.quantity, &r.price, &r.fees, &r.currency, &r.strike, &r.expiry, &r.memo); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t, err := r.transaction()
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", r.id, err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// Ledger returns every stored transaction as a ledger.
func (s *SQLiteStore) Ledger(ctx context.Context) (*wheel.Ledger, error) {
	txs, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return wheel.NewLedger(txs...)
}

// Count returns the number of stored transactions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}

// row is a transaction as stored.
type row struct {
	id, date, action, symbol        string
	quantity, price, fees, currency string
	strike, expiry, memo            string
}

func (r row) transaction() (wheel.Transaction, error) {
	on, err := wheel.ParseDate(r.date)
	if err != nil {
		return wheel.Transaction{}, err
	}
	action, err := wheel.ParseAction(r.action)
	if err != nil {
		return wheel.Transaction{}, err
	}
	quantity, err := decimal.NewFromString(r.quantity)
	if err != nil {
		return wheel.Transaction{}, fmt.Errorf("%w: quantity %q", wheel.ErrInvalidTransaction, r.quantity)
	}
	price, err := decimal.NewFromString(r.price)
	if err != nil {
		return wheel.Transaction{}, fmt.Errorf("%w: price %q", wheel.ErrInvalidTransaction, r.price)
	}
	fees, err := decimal.NewFromString(r.fees)
	if err != nil {
		return wheel.Transaction{}, fmt.Errorf("%w: fees %q", wheel.ErrInvalidTransaction, r.fees)
	}

	t := wheel.NewTransaction(on, action, r.symbol, wheel.Q(quantity), wheel.M(price, r.currency)).
		WithFees(wheel.M(fees, r.currency)).
		WithMemo(r.memo).
		WithID(r.id)
	if r.strike != "" {
		strike, err := decimal.NewFromString(r.strike)
		if err != nil {
			return wheel.Transaction{}, fmt.Errorf("%w: strike %q", wheel.ErrInvalidTransaction, r.strike)
		}
		t = t.WithStrike(wheel.M(strike, r.currency))
	}
	if r.expiry != "" {
		expiry, err := wheel.ParseDate(r.expiry)
		if err != nil {
			return wheel.Transaction{}, err
		}
		t = t.WithExpiry(expiry)
	}
	return t, t.Validate()
}
