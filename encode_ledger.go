package wheel

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeTransactions reads a stream of JSONL transactions without validating
// them. Empty lines are skipped.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction %q: %w", lineNum, string(lineBytes), err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return txs, nil
}

// DecodeLedger decodes transactions from a stream of JSONL data and returns a
// validated, sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	txs, err := DecodeTransactions(r)
	if err != nil {
		return nil, err
	}
	return NewLedger(txs...)
}

// EncodeTransaction writes a single transaction as one JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	// Write the JSON data followed by a newline to create the JSONL format.
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes all transactions in chronological order, one per line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
