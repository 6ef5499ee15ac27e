package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/wheel"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Fetcher resolves quotes with an HTTP GET on a URL template and extracts the
// price from the JSON response with a JSONPath expression.
//
// For instance URL "https://example.com/quote?s={symbol}" and Path
// "$.quote.last" read 12.3 from {"quote":{"last":12.3}}.
type Fetcher struct {
	URL      string // {symbol} is replaced by the escaped symbol
	Path     string // JSONPath of the price
	Currency string // currency of the returned prices

	Client *http.Client   // http.DefaultClient when nil
	Cache  Cache          // no cache when nil
	Logger zerolog.Logger // zero value logs nothing
}

// Fetch returns the quotes of symbols. Symbols that cannot be priced are left
// out of the result and their errors are joined.
func (f *Fetcher) Fetch(ctx context.Context, symbols ...string) (wheel.Quotes, error) {
	quotes := make(wheel.Quotes, len(symbols))
	var errs error
	for _, symbol := range symbols {
		price, err := f.Quote(ctx, symbol)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		quotes[symbol] = price
	}
	return quotes, errs
}

// Quote returns the price of a single symbol.
func (f *Fetcher) Quote(ctx context.Context, symbol string) (wheel.Money, error) {
	cache := f.Cache
	if cache == nil {
		cache = noCache{}
	}
	if price, ok := cache.Get(symbol); ok {
		f.Logger.Debug().Str("symbol", symbol).Stringer("price", price).Msg("quote from cache")
		return price, nil
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	addr := strings.ReplaceAll(f.URL, "{symbol}", url.QueryEscape(symbol))

	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return wheel.Money{}, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get(f.Path, jobj)
	if err != nil {
		return wheel.Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, f.Path, err)
	}
	// jsonpath may return a list of one answer or the answer itself: keep
	// the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	value, err := toDecimal(jval)
	if err != nil {
		return wheel.Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, f.Path, err)
	}
	if !value.IsPositive() {
		return wheel.Money{}, fmt.Errorf("invalid price for %q: %v", symbol, value)
	}

	price := wheel.M(value, f.Currency)
	cache.Put(symbol, price)
	f.Logger.Debug().Str("symbol", symbol).Stringer("price", price).Msg("quote fetched")
	return price, nil
}

// toDecimal converts a JSON number or a numeric string.
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(x), ",", ""))
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number %q", x)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("not a number %v", v)
	}
}
