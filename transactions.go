package wheel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are written as plain JSON numbers in ledger files.
	decimal.MarshalJSONWithoutQuotes = true
}

// Action is a typed string for identifying what a transaction does.
type Action string

// Actions recorded in a ledger.
const (
	ActionBuy        Action = "buy"
	ActionSell       Action = "sell"
	ActionAssignment Action = "assignment"
	ActionCalledAway Action = "called-away"
	ActionSellPut    Action = "sell-put"
	ActionBuyPut     Action = "buy-put"
	ActionSellCall   Action = "sell-call"
	ActionBuyCall    Action = "buy-call"
	ActionDividend   Action = "dividend"
	ActionDeposit    Action = "deposit"
	ActionWithdraw   Action = "withdraw"
)

// Actions lists every known action in a stable order.
var Actions = []Action{
	ActionBuy, ActionSell, ActionAssignment, ActionCalledAway,
	ActionSellPut, ActionBuyPut, ActionSellCall, ActionBuyCall,
	ActionDividend, ActionDeposit, ActionWithdraw,
}

// broker style aliases found in older ledgers.
var actionAliases = map[string]Action{
	"sto":        ActionSellPut,
	"btc":        ActionBuyPut,
	"stc":        ActionBuyPut,
	"sto-call":   ActionSellCall,
	"bto-call":   ActionBuyCall,
	"btc-call":   ActionBuyCall,
	"withdrawal": ActionWithdraw,
}

// ParseAction parses an action name, case insensitive. Underscores are read as
// dashes so "CALLED_AWAY" and "called-away" are the same action.
func ParseAction(s string) (Action, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if a := Action(name); a.Kind() != "" {
		return a, nil
	}
	if a, ok := actionAliases[name]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Kind groups actions by the asset they touch.
type Kind string

const (
	KindStock       Kind = "stock"
	KindOption      Kind = "option"
	KindDividend    Kind = "dividend"
	KindCapitalFlow Kind = "capital-flow"
)

// Kind returns the kind of the action, or "" for an unknown action.
func (a Action) Kind() Kind {
	switch a {
	case ActionBuy, ActionSell, ActionAssignment, ActionCalledAway:
		return KindStock
	case ActionSellPut, ActionBuyPut, ActionSellCall, ActionBuyCall:
		return KindOption
	case ActionDividend:
		return KindDividend
	case ActionDeposit, ActionWithdraw:
		return KindCapitalFlow
	}
	return ""
}

// Category is the coarse bucket used by the transaction store.
type Category string

const (
	CategoryTrading    Category = "TRADING"
	CategoryInvestment Category = "INVESTMENT"
)

// Category returns INVESTMENT for capital flows and TRADING otherwise.
func (a Action) Category() Category {
	if a.Kind() == KindCapitalFlow {
		return CategoryInvestment
	}
	return CategoryTrading
}

// Right is the type of an option contract.
type Right string

const (
	Put  Right = "put"
	Call Right = "call"
)

// Right returns the option right of an option action, "" otherwise.
func (a Action) Right() Right {
	switch a {
	case ActionSellPut, ActionBuyPut:
		return Put
	case ActionSellCall, ActionBuyCall:
		return Call
	}
	return ""
}

// IsIncome reports whether the action brings cash in: stock sales, option
// writing and dividends.
func (a Action) IsIncome() bool {
	switch a {
	case ActionSell, ActionCalledAway, ActionSellPut, ActionSellCall, ActionDividend:
		return true
	}
	return false
}

// Direction returns -1 for actions that sell (short an option, reduce
// shares) and +1 for actions that buy. Capital flows and dividends return 0.
func (a Action) Direction() int {
	switch a {
	case ActionBuy, ActionAssignment, ActionBuyPut, ActionBuyCall:
		return 1
	case ActionSell, ActionCalledAway, ActionSellPut, ActionSellCall:
		return -1
	}
	return 0
}

// Transaction is a single ledger entry. It is a value: builders return
// modified copies.
//
// Price is per share for stocks, per share premium for options (one contract
// covers Config.Multiplier shares), per share for dividends and per unit cash
// for deposits and withdrawals. Fees are charged once per transaction.
type Transaction struct {
	Date     Date
	Action   Action
	Symbol   string
	Quantity Quantity
	Price    Money
	Fees     Money
	Strike   Money  // zero when unknown, options only
	Expiry   Date   // zero when unknown, options only
	Memo     string // free text
	ID       string // assigned by stores, empty otherwise
}

// NewTransaction returns a transaction with no fees.
func NewTransaction(on Date, action Action, symbol string, quantity Quantity, price Money) Transaction {
	return Transaction{
		Date:     on,
		Action:   action,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Fees:     M(0, price.Currency()),
	}
}

// NewBuy creates a stock purchase.
func NewBuy(on Date, symbol string, quantity Quantity, price Money) Transaction {
	return NewTransaction(on, ActionBuy, symbol, quantity, price)
}

// NewSell creates a stock sale.
func NewSell(on Date, symbol string, quantity Quantity, price Money) Transaction {
	return NewTransaction(on, ActionSell, symbol, quantity, price)
}

// NewAssignment creates a put assignment: shares bought at the strike.
func NewAssignment(on Date, symbol string, quantity Quantity, price Money) Transaction {
	return NewTransaction(on, ActionAssignment, symbol, quantity, price)
}

// NewCalledAway creates a call assignment: shares sold at the strike.
func NewCalledAway(on Date, symbol string, quantity Quantity, price Money) Transaction {
	return NewTransaction(on, ActionCalledAway, symbol, quantity, price)
}

// NewSellPut creates a short put. premium is per share.
func NewSellPut(on Date, symbol string, contracts Quantity, premium Money) Transaction {
	return NewTransaction(on, ActionSellPut, symbol, contracts, premium)
}

// NewBuyPut creates a long put or the closing of a short put.
func NewBuyPut(on Date, symbol string, contracts Quantity, premium Money) Transaction {
	return NewTransaction(on, ActionBuyPut, symbol, contracts, premium)
}

// NewSellCall creates a short call. premium is per share.
func NewSellCall(on Date, symbol string, contracts Quantity, premium Money) Transaction {
	return NewTransaction(on, ActionSellCall, symbol, contracts, premium)
}

// NewBuyCall creates a long call or the closing of a short call.
func NewBuyCall(on Date, symbol string, contracts Quantity, premium Money) Transaction {
	return NewTransaction(on, ActionBuyCall, symbol, contracts, premium)
}

// NewDividend creates a dividend of perShare on quantity shares.
func NewDividend(on Date, symbol string, quantity Quantity, perShare Money) Transaction {
	return NewTransaction(on, ActionDividend, symbol, quantity, perShare)
}

// NewDeposit creates a cash deposit.
func NewDeposit(on Date, amount Money) Transaction {
	return NewTransaction(on, ActionDeposit, "", Q(1), amount)
}

// NewWithdraw creates a cash withdrawal.
func NewWithdraw(on Date, amount Money) Transaction {
	return NewTransaction(on, ActionWithdraw, "", Q(1), amount)
}

func (t Transaction) WithFees(fees Money) Transaction     { t.Fees = fees; return t }
func (t Transaction) WithStrike(strike Money) Transaction { t.Strike = strike; return t }
func (t Transaction) WithExpiry(expiry Date) Transaction  { t.Expiry = expiry; return t }
func (t Transaction) WithMemo(memo string) Transaction    { t.Memo = memo; return t }
func (t Transaction) WithID(id string) Transaction        { t.ID = id; return t }

// Kind returns the kind derived from the action.
func (t Transaction) Kind() Kind { return t.Action.Kind() }

// Currency returns the currency of the transaction amounts, "" when none is set.
func (t Transaction) Currency() string {
	for _, m := range []Money{t.Price, t.Fees, t.Strike} {
		if m.Currency() != "" {
			return m.Currency()
		}
	}
	return ""
}

// Gross returns price x quantity, times multiplier for option contracts.
// Fees are not included.
func (t Transaction) Gross(multiplier Quantity) Money {
	g := t.Price.Mul(t.Quantity)
	if t.Kind() == KindOption {
		g = g.Mul(multiplier)
	}
	return g
}

// SignedAmount returns the gross amount signed from the position's point of
// view: positive for a cost (buy, assignment, buy-put, buy-call), negative for
// income (sell, called-away, sell-put, sell-call, dividend). Capital flows
// carry no P&L and return zero.
func (t Transaction) SignedAmount(multiplier Quantity) Money {
	if t.Kind() == KindCapitalFlow {
		return M(0, t.Price.Currency())
	}
	g := t.Gross(multiplier)
	if t.Action.IsIncome() {
		return g.Neg()
	}
	return g
}

// Validate checks the transaction invariants. Errors wrap ErrUnknownAction
// or ErrInvalidTransaction.
func (t Transaction) Validate() error {
	kind := t.Kind()
	if kind == "" {
		return fmt.Errorf("%w: %q", ErrUnknownAction, t.Action)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: %s has no date", ErrInvalidTransaction, t.Action)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: %s %s quantity must be positive, got %v", ErrInvalidTransaction, t.Action, t.Symbol, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%w: %s %s price must not be negative, got %v", ErrInvalidTransaction, t.Action, t.Symbol, t.Price)
	}
	if t.Fees.IsNegative() {
		return fmt.Errorf("%w: %s %s fees must not be negative, got %v", ErrInvalidTransaction, t.Action, t.Symbol, t.Fees)
	}
	switch {
	case kind == KindCapitalFlow && t.Symbol != "":
		return fmt.Errorf("%w: %s must not have a symbol, got %q", ErrInvalidTransaction, t.Action, t.Symbol)
	case kind != KindCapitalFlow && t.Symbol == "":
		return fmt.Errorf("%w: %s requires a symbol", ErrInvalidTransaction, t.Action)
	}
	if kind != KindOption && (!t.Strike.IsZero() || !t.Expiry.IsZero()) {
		return fmt.Errorf("%w: %s %s cannot have a strike or an expiry", ErrInvalidTransaction, t.Action, t.Symbol)
	}
	if t.Strike.IsNegative() {
		return fmt.Errorf("%w: %s %s strike must not be negative, got %v", ErrInvalidTransaction, t.Action, t.Symbol, t.Strike)
	}
	cur := t.Price.Currency()
	for _, m := range []Money{t.Fees, t.Strike} {
		if cur != "" && m.Currency() != "" && m.Currency() != cur {
			return fmt.Errorf("%w: %s %s mixes currencies %s and %s", ErrInvalidTransaction, t.Action, t.Symbol, cur, m.Currency())
		}
	}
	return nil
}

// Equal reports whether both transactions record the same thing.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Action == o.Action &&
		t.Symbol == o.Symbol &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Fees.Equal(o.Fees) &&
		t.Strike.Equal(o.Strike) &&
		t.Expiry == o.Expiry &&
		t.Currency() == o.Currency() &&
		t.Memo == o.Memo &&
		t.ID == o.ID
}

// MarshalJSON writes the transaction with keys in a canonical order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("action", t.Action)
	w.Optional("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	w.Optional("currency", t.Currency())
	w.When(!t.Fees.IsZero(), "fees", t.Fees.Decimal())
	w.When(!t.Strike.IsZero(), "strike", t.Strike.Decimal())
	w.When(!t.Expiry.IsZero(), "expiry", t.Expiry)
	w.Optional("memo", t.Memo)
	w.Optional("id", t.ID)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a transaction. The action accepts the aliases of
// ParseAction. It does not validate the transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date     Date             `json:"date"`
		Action   string           `json:"action"`
		Symbol   string           `json:"symbol"`
		Quantity decimal.Decimal  `json:"quantity"`
		Price    decimal.Decimal  `json:"price"`
		Currency string           `json:"currency"`
		Fees     decimal.Decimal  `json:"fees"`
		Strike   *decimal.Decimal `json:"strike"`
		Expiry   Date             `json:"expiry"`
		Memo     string           `json:"memo"`
		ID       string           `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	action, err := ParseAction(raw.Action)
	if err != nil {
		return err
	}
	*t = Transaction{
		Date:     raw.Date,
		Action:   action,
		Symbol:   raw.Symbol,
		Quantity: Q(raw.Quantity),
		Price:    M(raw.Price, raw.Currency),
		Fees:     M(raw.Fees, raw.Currency),
		Expiry:   raw.Expiry,
		Memo:     raw.Memo,
		ID:       raw.ID,
	}
	if raw.Strike != nil {
		t.Strike = M(*raw.Strike, raw.Currency)
	}
	return nil
}
