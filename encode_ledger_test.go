package wheel

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeTransaction_KeyOrder(t *testing.T) {
	tx := NewSellPut(MustParse("2025-01-09"), "XYZ", Q(2), USD(1.25)).
		WithFees(USD(1.3)).
		WithStrike(USD(45)).
		WithExpiry(MustParse("2025-02-21")).
		WithMemo("weekly")

	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, tx); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	want := `{"date":"2025-01-09","action":"sell-put","symbol":"XYZ","quantity":2,"price":1.25,"currency":"USD","fees":1.3,"strike":45,"expiry":"2025-02-21","memo":"weekly"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeTransaction() =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeLedger(t *testing.T) {
	jsonl := `{"date":"2025-01-02","action":"buy","symbol":"XYZ","quantity":100,"price":110,"currency":"USD"}

{"date":"2025-01-09","action":"STO_CALL","symbol":"XYZ","quantity":1,"price":2.6,"currency":"USD","strike":88,"expiry":"2025-03-21"}
{"date":"2025-01-05","action":"deposit","quantity":1,"price":20000,"currency":"USD"}
`
	l, err := DecodeLedger(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	txs := l.Collect()
	if len(txs) != 3 {
		t.Fatalf("DecodeLedger() decoded %d transactions, want 3", len(txs))
	}
	if txs[1].Action != ActionDeposit {
		t.Errorf("second transaction = %s, want the deposit sorted by date", txs[1].Action)
	}
	call := txs[2]
	if call.Action != ActionSellCall || !call.Strike.Equal(USD(88)) || call.Expiry != MustParse("2025-03-21") {
		t.Errorf("decoded call = %+v", call)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	again, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() of encoded ledger error = %v", err)
	}
	for i, tx := range again.Collect() {
		if !tx.Equal(txs[i]) {
			t.Errorf("transaction %d changed after encoding: got %+v, want %+v", i, tx, txs[i])
		}
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	tests := []struct {
		name    string
		jsonl   string
		wantErr error
	}{
		{"unknown action", `{"date":"2025-01-02","action":"exercise","symbol":"XYZ","quantity":1,"price":1}`, ErrUnknownAction},
		{"negative quantity", `{"date":"2025-01-02","action":"buy","symbol":"XYZ","quantity":-1,"price":1}`, ErrInvalidTransaction},
		{"negative fees", `{"date":"2025-01-02","action":"buy","symbol":"XYZ","quantity":1,"price":1,"fees":-2}`, ErrInvalidTransaction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tt.jsonl)); !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeLedger() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
