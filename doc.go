// Package wheel is a ledger calculation engine for an option "wheel"
// strategy: selling puts until assigned, then selling calls against the shares
// until called away.
//
// The core functionalities include:
//   - Ledger Management: an append-only, chronologically ordered list of
//     stock, option, dividend and capital flow transactions, validated on
//     ingestion and persisted as JSONL.
//   - Option accounting: net contracts per leg, premium collected and paid,
//     open legs by strike and expiry.
//   - Position accounting: average cost basis adjusted by premiums and fees,
//     realized and unrealized P&L, cost basis timeline.
//   - Strategy analytics: cycle state, recovery projection, per trade series,
//     payoff at expiry and portfolio aggregation.
//
// The engine is stateless: every result is recomputed from the Ledger and the
// optional prices supplied by the caller. Results that depend on data that may
// be missing are Optional values, never zeros or infinities.
//
// This package serves as the foundational logic for the `wheelctl`
// command-line tool.
package wheel
