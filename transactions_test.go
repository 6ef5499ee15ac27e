package wheel

import (
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "buy", want: ActionBuy},
		{in: "SELL", want: ActionSell},
		{in: "CALLED_AWAY", want: ActionCalledAway},
		{in: "called-away", want: ActionCalledAway},
		{in: "Assignment", want: ActionAssignment},
		{in: "sell_put", want: ActionSellPut},
		{in: "STO", want: ActionSellPut},
		{in: "BTC", want: ActionBuyPut},
		{in: "STC", want: ActionBuyPut},
		{in: "STO_CALL", want: ActionSellCall},
		{in: "BTO_CALL", want: ActionBuyCall},
		{in: "BTC_CALL", want: ActionBuyCall},
		{in: "DIVIDEND", want: ActionDividend},
		{in: "WITHDRAWAL", want: ActionWithdraw},
		{in: "exercise", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAction) {
					t.Errorf("ParseAction(%q) error = %v, want ErrUnknownAction", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAction_KindAndCategory(t *testing.T) {
	for _, a := range Actions {
		if a.Kind() == "" {
			t.Errorf("%s has no kind", a)
		}
		want := CategoryTrading
		if a == ActionDeposit || a == ActionWithdraw {
			want = CategoryInvestment
		}
		if got := a.Category(); got != want {
			t.Errorf("%s.Category() = %s, want %s", a, got, want)
		}
	}
	if got := Action("exercise").Kind(); got != "" {
		t.Errorf("unknown action kind = %q, want empty", got)
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	on := MustParse("2025-01-02")
	mul := Q(100)
	tests := []struct {
		name string
		tx   Transaction
		want Money
	}{
		{"buy is a cost", NewBuy(on, "XYZ", Q(10), USD(50)), USD(500)},
		{"assignment is a cost", NewAssignment(on, "XYZ", Q(100), USD(45)), USD(4500)},
		{"sell is income", NewSell(on, "XYZ", Q(10), USD(55)), USD(-550)},
		{"called away is income", NewCalledAway(on, "XYZ", Q(100), USD(60)), USD(-6000)},
		{"sell put is income", NewSellPut(on, "XYZ", Q(2), USD(1.5)), USD(-300)},
		{"buy put is a cost", NewBuyPut(on, "XYZ", Q(1), USD(0.5)), USD(50)},
		{"sell call is income", NewSellCall(on, "XYZ", Q(1), USD(2.6)), USD(-260)},
		{"buy call is a cost", NewBuyCall(on, "XYZ", Q(1), USD(4)), USD(400)},
		{"dividend is income", NewDividend(on, "XYZ", Q(100), USD(0.25)), USD(-25)},
		{"fees are not included", NewBuy(on, "XYZ", Q(1), USD(10)).WithFees(USD(1)), USD(10)},
		{"deposit has no amount", NewDeposit(on, USD(1000)), USD(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.SignedAmount(mul); !got.Equal(tt.want) {
				t.Errorf("SignedAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	on := MustParse("2025-01-02")
	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{"valid buy", NewBuy(on, "XYZ", Q(10), USD(50)), nil},
		{"valid deposit", NewDeposit(on, USD(1000)), nil},
		{"zero price is allowed", NewSellPut(on, "XYZ", Q(1), USD(0)), nil},
		{"zero quantity", NewBuy(on, "XYZ", Q(0), USD(50)), ErrInvalidTransaction},
		{"negative quantity", NewBuy(on, "XYZ", Q(-1), USD(50)), ErrInvalidTransaction},
		{"negative price", NewBuy(on, "XYZ", Q(1), USD(-50)), ErrInvalidTransaction},
		{"negative fees", NewBuy(on, "XYZ", Q(1), USD(50)).WithFees(USD(-1)), ErrInvalidTransaction},
		{"missing symbol", NewBuy(on, "", Q(1), USD(50)), ErrInvalidTransaction},
		{"symbol on capital flow", NewTransaction(on, ActionDeposit, "XYZ", Q(1), USD(50)), ErrInvalidTransaction},
		{"strike on stock", NewBuy(on, "XYZ", Q(1), USD(50)).WithStrike(USD(45)), ErrInvalidTransaction},
		{"missing date", NewBuy(Date{}, "XYZ", Q(1), USD(50)), ErrInvalidTransaction},
		{"mixed currencies", NewBuy(on, "XYZ", Q(1), USD(50)).WithFees(M(1, "EUR")), ErrInvalidTransaction},
		{"unknown action", NewTransaction(on, "exercise", "XYZ", Q(1), USD(50)), ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
