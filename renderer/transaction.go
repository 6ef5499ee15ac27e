package renderer

import (
	"fmt"

	"github.com/etnz/wheel"
)

// Transaction renders a transaction to a string.
func Transaction(tx wheel.Transaction) string {
	var s string
	switch tx.Action {
	case wheel.ActionBuy:
		s = fmt.Sprintf("Bought %v %s at %v", tx.Quantity, tx.Symbol, tx.Price)
	case wheel.ActionSell:
		s = fmt.Sprintf("Sold %v %s at %v", tx.Quantity, tx.Symbol, tx.Price)
	case wheel.ActionAssignment:
		s = fmt.Sprintf("Assigned %v %s at %v", tx.Quantity, tx.Symbol, tx.Price)
	case wheel.ActionCalledAway:
		s = fmt.Sprintf("Called away %v %s at %v", tx.Quantity, tx.Symbol, tx.Price)
	case wheel.ActionSellPut, wheel.ActionBuyPut, wheel.ActionSellCall, wheel.ActionBuyCall:
		verb := "Bought"
		if tx.Action.IsIncome() {
			verb = "Sold"
		}
		s = fmt.Sprintf("%s %v %s %s", verb, tx.Quantity, tx.Symbol, tx.Action.Right())
		if !tx.Strike.IsZero() {
			s += fmt.Sprintf(" %v", tx.Strike)
		}
		if !tx.Expiry.IsZero() {
			s += fmt.Sprintf(" exp %v", tx.Expiry)
		}
		s += fmt.Sprintf(" for %v", tx.Price)
	case wheel.ActionDividend:
		s = fmt.Sprintf("Dividend of %v on %v %s", tx.Price, tx.Quantity, tx.Symbol)
	case wheel.ActionDeposit:
		s = fmt.Sprintf("Deposited %v", tx.Price.Mul(tx.Quantity))
	case wheel.ActionWithdraw:
		s = fmt.Sprintf("Withdrew %v", tx.Price.Mul(tx.Quantity))
	default:
		s = string(tx.Action)
	}
	if !tx.Fees.IsZero() {
		s += fmt.Sprintf(" (fees %v)", tx.Fees)
	}
	return s
}

// TransactionsMarkdown renders a transaction log.
func TransactionsMarkdown(txs []wheel.Transaction) string {
	r := newRenderer()
	r.Printf("## Transactions\n\n")
	if len(txs) == 0 {
		r.Printf("No transactions.\n")
		return r.String()
	}
	r.table("lll", "Date", "Transaction", "Memo")
	for _, tx := range txs {
		r.row(tx.Date.String(), Transaction(tx), tx.Memo)
	}
	return r.String()
}
