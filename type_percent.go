package wheel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value, 5 means 5%.
type Percent float64

// percentOf returns 100*num/den. den must not be zero.
func percentOf(num, den decimal.Decimal) Percent {
	return Percent(num.Div(den).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
