package wheel

import (
	"math"
	"slices"
	"testing"
)

// portfolioLedger holds A and B open, C closed and D open.
func portfolioLedger(t *testing.T) *Ledger {
	on := MustParse("2025-01-06")
	return mustLedger(t,
		NewDeposit(on, USD(20000)),
		NewBuy(on, "A", Q(100), USD(10)),
		NewBuy(on, "B", Q(50), USD(20)),
		NewSellCall(on.Add(1), "B", Q(1), USD(1)),
		NewBuy(on, "C", Q(10), USD(30)),
		NewSell(on.Add(2), "C", Q(10), USD(35)),
		NewBuy(on, "D", Q(10), USD(100)),
		NewDividend(on.Add(10), "A", Q(100), USD(0.1)),
		NewWithdraw(on.Add(20), USD(500)),
	)
}

func TestAggregator_Allocation(t *testing.T) {
	a := NewAggregator(portfolioLedger(t), DefaultConfig())
	quotes := Quotes{"A": USD(12), "B": USD(30), "C": USD(40)}

	got := a.Allocation(quotes)
	if len(got) != 2 {
		t.Fatalf("Allocation() = %v, want A and B only", got)
	}
	sum := 0.0
	for _, w := range got {
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("Allocation() sums to %v, want 1", sum)
	}
	if math.Abs(got["A"]-1200.0/2700) > 1e-9 {
		t.Errorf("Allocation()[A] = %v, want %v", got["A"], 1200.0/2700)
	}
	if _, ok := got["D"]; ok {
		t.Errorf("unpriced D is allocated")
	}

	if got := a.Allocation(nil); len(got) != 0 {
		t.Errorf("Allocation(nil) = %v, want empty", got)
	}
}

func TestAggregator_Summary(t *testing.T) {
	a := NewAggregator(portfolioLedger(t), DefaultConfig())
	s := a.Summary(Quotes{"A": USD(12), "B": USD(30)}, DividendRates{"A": USD(0.4)})

	var symbols []string
	for _, r := range s.Reports {
		symbols = append(symbols, r.Symbol)
	}
	if !slices.Equal(symbols, []string{"A", "B", "C", "D"}) {
		t.Errorf("Reports symbols = %v, want [A B C D]", symbols)
	}

	tests := []struct {
		name string
		got  Money
		want Money
	}{
		// A 1000, B 1000-100, C closed, D 1000
		{"TotalCostBasis", s.TotalCostBasis, USD(2900)},
		// A 1200-1000, B 1500-900, D unpriced
		{"TotalUnrealized", s.TotalUnrealized, USD(800)},
		{"TotalMarketValue", s.TotalMarketValue, USD(2700)},
		// A -1000, B -1000+100, C +50, D -1000
		{"TotalRealized", s.TotalRealized, USD(-2850)},
		{"NetPremium", s.NetPremium, USD(100)},
		{"Dividends", s.Dividends, USD(10)},
		{"NetDeposits", s.NetDeposits, USD(19500)},
		{"EstimatedAnnualDividends", s.EstimatedAnnualDividends, USD(40)},
	}
	for _, tt := range tests {
		if !tt.got.Equal(tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if !slices.Equal(s.Unpriced, []string{"D"}) {
		t.Errorf("Unpriced = %v, want [D]", s.Unpriced)
	}
}

func TestAggregator_Diversification(t *testing.T) {
	a := NewAggregator(portfolioLedger(t), DefaultConfig())

	// A 1000, B 900, D 1000 at cost.
	d, ok := a.Diversification(nil).Get()
	if !ok {
		t.Fatal("Diversification() is not available")
	}
	want := (1000.0*1000 + 900*900 + 1000*1000) / (2900 * 2900) * 100
	if math.Abs(d.Concentration-want) > 1e-6 {
		t.Errorf("Concentration = %v, want %v", d.Concentration, want)
	}
	if !d.Reasonable() {
		t.Errorf("Reasonable() = false for three similar positions")
	}

	single := NewAggregator(mustLedger(t, NewBuy(MustParse("2025-01-06"), "A", Q(1), USD(10))), DefaultConfig())
	if d, _ := single.Diversification(nil).Get(); d.Concentration != 100 || d.Reasonable() {
		t.Errorf("single position Concentration = %v, want 100", d.Concentration)
	}

	empty := NewAggregator(mustLedger(t), DefaultConfig())
	if empty.Diversification(nil).IsSet() {
		t.Errorf("Diversification() of an empty ledger is available")
	}
}

func TestAggregator_Risk(t *testing.T) {
	a := NewAggregator(portfolioLedger(t), DefaultConfig())
	tests := []struct {
		name   string
		quotes Quotes
		want   RiskLevel
		worst  string
	}{
		{"no quote", nil, RiskUnknown, ""},
		// A +200, B +600, D +100: D is the weakest
		{"all up", Quotes{"A": USD(12), "B": USD(30), "D": USD(110)}, RiskLow, "D"},
		// A -150 over 2900
		{"small loss", Quotes{"A": USD(8.5), "B": USD(30), "D": USD(110)}, RiskLow, "A"},
		// D -500 over 2900 = -17%
		{"medium loss", Quotes{"A": USD(12), "B": USD(30), "D": USD(50)}, RiskMedium, "D"},
		// D -800 over 2900 = -27%
		{"large loss", Quotes{"A": USD(12), "B": USD(30), "D": USD(20)}, RiskHigh, "D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Risk(tt.quotes)
			if got.Level != tt.want || got.Worst != tt.worst {
				t.Errorf("Risk() = %s on %q, want %s on %q", got.Level, got.Worst, tt.want, tt.worst)
			}
		})
	}

	closed := NewAggregator(mustLedger(t,
		NewBuy(MustParse("2025-01-06"), "A", Q(1), USD(10)),
		NewSell(MustParse("2025-01-07"), "A", Q(1), USD(11)),
	), DefaultConfig())
	if got := closed.Risk(nil).Level; got != RiskNone {
		t.Errorf("Risk() without open position = %s, want %s", got, RiskNone)
	}
}

func TestAggregator_PremiumEfficiency(t *testing.T) {
	a := NewAggregator(portfolioLedger(t), DefaultConfig())
	// 100 collected over 1000+1000+300+1000
	got, ok := a.PremiumEfficiency().Get()
	if !ok || !got.Equal(Percent(100.0/3300*100)) {
		t.Errorf("PremiumEfficiency() = %v, %v", got, ok)
	}

	empty := NewAggregator(mustLedger(t), DefaultConfig())
	if empty.PremiumEfficiency().IsSet() {
		t.Errorf("PremiumEfficiency() of an empty ledger is available")
	}
}

func TestAggregator_IdempotentReplay(t *testing.T) {
	quotes := Quotes{"A": USD(12), "B": USD(30), "D": USD(110)}
	first := NewAggregator(portfolioLedger(t), DefaultConfig()).Summary(quotes, nil)
	again := NewAggregator(portfolioLedger(t), DefaultConfig()).Summary(quotes, nil)

	totals := func(s Summary) []Money {
		return []Money{s.TotalCostBasis, s.TotalRealized, s.TotalUnrealized, s.TotalMarketValue, s.NetPremium, s.Dividends, s.NetDeposits}
	}
	a, b := totals(first), totals(again)
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("total %d = %v then %v", i, a[i], b[i])
		}
	}
	if len(first.Reports) != len(again.Reports) {
		t.Fatalf("Reports = %d then %d", len(first.Reports), len(again.Reports))
	}
	for i := range first.Reports {
		x, y := first.Reports[i], again.Reports[i]
		if x.Symbol != y.Symbol || x.State != y.State || !x.Position.CostBasis.Equal(y.Position.CostBasis) {
			t.Errorf("report %d = %s %s %v then %s %s %v", i, x.Symbol, x.State, x.Position.CostBasis, y.Symbol, y.State, y.Position.CostBasis)
		}
	}
}
