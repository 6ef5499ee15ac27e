// Package renderer turns engine results into markdown documents.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/wheel"
)

// mdRenderer accumulates a markdown document.
type mdRenderer struct {
	*strings.Builder
}

func newRenderer() *mdRenderer { return &mdRenderer{Builder: &strings.Builder{}} }

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// table prints a markdown table header. align is one of "l" or "r" per column.
func (r *mdRenderer) table(align string, headers ...string) {
	r.Printf("| %s |\n", strings.Join(headers, " | "))
	cols := make([]string, len(headers))
	for i := range cols {
		cols[i] = ":---"
		if i < len(align) && align[i] == 'r' {
			cols[i] = "---:"
		}
	}
	r.Printf("|%s|\n", strings.Join(cols, "|"))
}

// row prints a markdown table row.
func (r *mdRenderer) row(cells ...string) {
	r.Printf("| %s |\n", strings.Join(cells, " | "))
}

// na is printed for values that are not available.
const na = "n/a"

// optMoney formats an optional amount.
func optMoney(o wheel.Optional[wheel.Money]) string {
	if m, ok := o.Get(); ok {
		return m.String()
	}
	return na
}

// optSignedMoney formats an optional signed amount.
func optSignedMoney(o wheel.Optional[wheel.Money]) string {
	if m, ok := o.Get(); ok {
		return m.SignedString()
	}
	return na
}

// optPercent formats an optional percentage.
func optPercent(o wheel.Optional[wheel.Percent]) string {
	if p, ok := o.Get(); ok {
		return p.String()
	}
	return na
}
