package wheel

// Quotes maps a symbol to its current price per share.
type Quotes map[string]Money

// Price returns the quote of symbol. A missing or non positive quote is not
// available.
func (q Quotes) Price(symbol string) (Money, bool) {
	p, ok := q[symbol]
	if !ok || !p.IsPositive() {
		return Money{}, false
	}
	return p, true
}

// DividendRates maps a symbol to its annual dividend per share.
type DividendRates map[string]Money

// Rate returns the annual dividend per share of symbol.
func (r DividendRates) Rate(symbol string) (Money, bool) {
	p, ok := r[symbol]
	if !ok || p.IsNegative() {
		return Money{}, false
	}
	return p, true
}

// compatible reports whether m can be combined with amounts of the ledger.
func (l *Ledger) compatible(m Money) bool {
	return m.Currency() == "" || l.currency == "" || m.Currency() == l.currency
}
