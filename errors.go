package wheel

import "errors"

var (
	// ErrInvalidTransaction reports a transaction that violates the ledger
	// invariants (negative amounts, missing symbol, short position...).
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrUnknownAction reports an action outside the closed set of actions.
	ErrUnknownAction = errors.New("unknown action")
)
