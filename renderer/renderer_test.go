package renderer

import (
	"slices"
	"strings"
	"testing"

	"github.com/etnz/wheel"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline parses a markdown document and returns its headings and the number
// of rows of each table.
func outline(t *testing.T, doc string) (headings []string, tables []int) {
	t.Helper()
	source := []byte(doc)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(source))

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			var b strings.Builder
			for i := 0; i < v.Lines().Len(); i++ {
				line := v.Lines().At(i)
				b.Write(line.Value(source))
			}
			headings = append(headings, b.String())
		case *extast.Table:
			rows := 0
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*extast.TableRow); ok {
					rows++
				}
			}
			tables = append(tables, rows)
		}
		return ast.WalkContinue, nil
	})
	return headings, tables
}

func engine(t *testing.T) *wheel.Aggregator {
	t.Helper()
	usd := func(v float64) wheel.Money { return wheel.M(v, "USD") }
	expiry := wheel.MustParse("2025-03-21")
	l, err := wheel.NewLedger(
		wheel.NewDeposit(wheel.MustParse("2025-01-01"), usd(20000)),
		wheel.NewBuy(wheel.MustParse("2025-01-02"), "XYZ", wheel.Q(100), usd(110)),
		wheel.NewSellCall(wheel.MustParse("2025-01-09"), "XYZ", wheel.Q(1), usd(2.60)).WithStrike(usd(88)).WithExpiry(expiry),
		wheel.NewBuyCall(wheel.MustParse("2025-01-23"), "XYZ", wheel.Q(1), usd(4.00)).WithStrike(usd(84)).WithExpiry(expiry),
		wheel.NewSellCall(wheel.MustParse("2025-02-06"), "XYZ", wheel.Q(1), usd(2.35)).WithStrike(usd(88)).WithExpiry(expiry),
		wheel.NewSellPut(wheel.MustParse("2025-02-10"), "ABC", wheel.Q(1), usd(1.10)).WithStrike(usd(40)),
	)
	if err != nil {
		t.Fatalf("NewLedger() error = %v", err)
	}
	cfg := wheel.DefaultConfig()
	cfg.AsOf = wheel.MustParse("2025-03-01")
	return wheel.NewAggregator(l, cfg)
}

func TestSummaryMarkdown(t *testing.T) {
	a := engine(t)
	quotes := wheel.Quotes{"XYZ": wheel.M(100, "USD")}
	doc := SummaryMarkdown(Portfolio{
		Date:              wheel.MustParse("2025-03-01"),
		Summary:           a.Summary(quotes, nil),
		Allocation:        a.Allocation(quotes),
		Diversification:   a.Diversification(quotes),
		Risk:              a.Risk(quotes),
		PremiumEfficiency: a.PremiumEfficiency(),
	})

	headings, tables := outline(t, doc)
	want := []string{"Wheel Summary on 2025-03-01", "Totals", "Positions", "Allocation", "Risk"}
	if !slices.Equal(headings, want) {
		t.Errorf("headings = %q, want %q", headings, want)
	}
	// totals, positions (ABC and XYZ), allocation (XYZ)
	if !slices.Equal(tables, []int{9, 2, 1}) {
		t.Errorf("table rows = %v, want [9 2 1]", tables)
	}
	if !strings.Contains(doc, "$109.05") {
		t.Errorf("summary does not show the adjusted cost:\n%s", doc)
	}
}

func TestSummaryMarkdown_NoQuotes(t *testing.T) {
	a := engine(t)
	doc := SummaryMarkdown(Portfolio{
		Summary: a.Summary(nil, nil),
		Risk:    a.Risk(nil),
	})
	headings, _ := outline(t, doc)
	if slices.Contains(headings, "Allocation") {
		t.Errorf("allocation rendered without quotes:\n%s", doc)
	}
	if !strings.Contains(doc, "Without quote: XYZ") {
		t.Errorf("unpriced symbols not listed:\n%s", doc)
	}
}

func TestSymbolMarkdown(t *testing.T) {
	a := engine(t)
	rep := a.Engine().Report("XYZ", wheel.Quotes{"XYZ": wheel.M(100, "USD")}, nil)
	doc := SymbolMarkdown(rep)

	headings, tables := outline(t, doc)
	want := []string{"XYZ", "Position", "Options", "Open Legs", "Recovery", "Trades", "Cost Basis Timeline"}
	if !slices.Equal(headings, want) {
		t.Errorf("headings = %q, want %q", headings, want)
	}
	// open legs: 84 and 88 calls, trades: 3, timeline: 4
	if len(tables) != 6 || tables[2] != 2 || tables[4] != 3 || tables[5] != 4 {
		t.Errorf("table rows = %v", tables)
	}
}

func TestSymbolMarkdown_Waiting(t *testing.T) {
	a := engine(t)
	doc := SymbolMarkdown(a.Engine().Report("ABC", nil, nil))
	headings, _ := outline(t, doc)
	if slices.Contains(headings, "Recovery") || slices.Contains(headings, "Cost Basis Timeline") {
		t.Errorf("flat position renders stock sections: %q", headings)
	}
	if !strings.Contains(doc, "**waiting**") {
		t.Errorf("state not rendered:\n%s", doc)
	}
}

func TestPayoffMarkdown(t *testing.T) {
	a := engine(t)
	usd := func(v float64) wheel.Money { return wheel.M(v, "USD") }
	points := a.Engine().PayoffCurve("XYZ", usd(70), usd(100), usd(10))
	doc := PayoffMarkdown("XYZ", points)

	_, tables := outline(t, doc)
	// 70, 80, 84, 88, 90, 100
	if !slices.Equal(tables, []int{6}) {
		t.Errorf("table rows = %v, want [6]", tables)
	}
	if !strings.Contains(doc, "-$3,905.00") || !strings.Contains(doc, "-$1,705.00") {
		t.Errorf("payoff misses the worked values:\n%s", doc)
	}

	if doc := PayoffMarkdown("ABC", wheel.None[[]wheel.PayoffPoint]()); !strings.Contains(doc, "has no strike") {
		t.Errorf("unavailable payoff = %q", doc)
	}
	empty := a.Engine().PayoffCurve("XYZ", usd(100), usd(70), usd(10))
	if doc := PayoffMarkdown("XYZ", empty); !strings.Contains(doc, "price range is empty") {
		t.Errorf("empty payoff = %q", doc)
	}
}

func TestTransaction(t *testing.T) {
	usd := func(v float64) wheel.Money { return wheel.M(v, "USD") }
	tests := []struct {
		tx   wheel.Transaction
		want string
	}{
		{wheel.NewBuy(wheel.MustParse("2025-01-02"), "XYZ", wheel.Q(100), usd(110)), "Bought 100 XYZ at $110.00"},
		{wheel.NewSellPut(wheel.MustParse("2025-01-02"), "XYZ", wheel.Q(1), usd(1.5)).WithStrike(usd(40)).WithExpiry(wheel.MustParse("2025-01-17")), "Sold 1 XYZ put $40.00 exp 2025-01-17 for $1.50"},
		{wheel.NewDeposit(wheel.MustParse("2025-01-02"), usd(1000)).WithFees(usd(1)), "Deposited $1,000.00 (fees $1.00)"},
	}
	for _, tt := range tests {
		if got := Transaction(tt.tx); got != tt.want {
			t.Errorf("Transaction() = %q, want %q", got, tt.want)
		}
	}
}

func TestSection(t *testing.T) {
	r := newRenderer()
	r.section("## Skipped", func(b *mdRenderer) bool {
		b.table("l", "Hidden")
		return false
	})
	r.section("## Shown", func(b *mdRenderer) bool {
		b.table("lr", "Symbol", "Weight")
		b.row("XYZ", "100.00%")
		return true
	})

	doc := r.String()
	if strings.Contains(doc, "Skipped") || strings.Contains(doc, "Hidden") {
		t.Errorf("skipped section rendered:\n%s", doc)
	}
	headings, tables := outline(t, doc)
	if !slices.Equal(headings, []string{"Shown"}) {
		t.Errorf("headings = %q, want [Shown]", headings)
	}
	if len(tables) != 1 || tables[0] != 1 {
		t.Errorf("tables = %v, want [1]", tables)
	}
}
