package wheel

import (
	"testing"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// mustLedger builds a ledger or fails the test.
func mustLedger(t *testing.T, txs ...Transaction) *Ledger {
	t.Helper()
	l, err := NewLedger(txs...)
	if err != nil {
		t.Fatalf("NewLedger() error = %v", err)
	}
	return l
}

// workedExample is the covered call sequence used across tests: buy 100
// shares at 110, sell an 88 call for 2.60, buy an 84 call for 4.00, sell an
// 88 call for 2.35.
func workedExample() []Transaction {
	expiry := MustParse("2025-03-21")
	return []Transaction{
		NewBuy(MustParse("2025-01-02"), "XYZ", Q(100), USD(110)),
		NewSellCall(MustParse("2025-01-09"), "XYZ", Q(1), USD(2.60)).WithStrike(USD(88)).WithExpiry(expiry),
		NewBuyCall(MustParse("2025-01-23"), "XYZ", Q(1), USD(4.00)).WithStrike(USD(84)).WithExpiry(expiry),
		NewSellCall(MustParse("2025-02-06"), "XYZ", Q(1), USD(2.35)).WithStrike(USD(88)).WithExpiry(expiry),
	}
}
