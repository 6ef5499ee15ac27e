package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quoteServer serves {"quote":{"last":...}} for a few symbols and counts requests.
func quoteServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	prices := map[string]string{
		"XYZ": `{"quote":{"last":101.5}}`,
		"ABC": `{"quote":{"last":"1,234.50"}}`,
		"BAD": `{"quote":{"last":"n/a"}}`,
		"NEG": `{"quote":{"last":-3}}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := prices[r.URL.Query().Get("s")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	var hits atomic.Int32
	srv := quoteServer(t, &hits)
	f := &Fetcher{URL: srv.URL + "/quote?s={symbol}", Path: "$.quote.last", Currency: "USD"}

	quotes, err := f.Fetch(context.Background(), "XYZ", "ABC", "BAD", "NEG", "UNKNOWN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"BAD"`)
	assert.Contains(t, err.Error(), `"NEG"`)
	assert.Contains(t, err.Error(), `"UNKNOWN"`)

	require.Len(t, quotes, 2)
	assert.Equal(t, "$101.50", quotes["XYZ"].String())
	assert.Equal(t, "$1,234.50", quotes["ABC"].String())
	_, ok := quotes.Price("BAD")
	assert.False(t, ok, "failed symbols stay unpriced")
}

func TestFetcher_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := quoteServer(t, &hits)
	f := &Fetcher{
		URL:      srv.URL + "/quote?s={symbol}",
		Path:     "$.quote.last",
		Currency: "USD",
		Cache:    NewMemoryCache(time.Hour),
	}

	for range 3 {
		_, err := f.Quote(context.Background(), "XYZ")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetcher_Canceled(t *testing.T) {
	var hits atomic.Int32
	srv := quoteServer(t, &hits)
	f := &Fetcher{URL: srv.URL + "/quote?s={symbol}", Path: "$.quote.last"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Quote(ctx, "XYZ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDaily(t *testing.T) {
	var hits atomic.Int32
	srv := quoteServer(t, &hits)
	dir := t.TempDir()
	f := &Fetcher{
		URL:    srv.URL + "/quote?s={symbol}",
		Path:   "$.quote.last",
		Client: Daily(dir, zerolog.Nop()),
	}

	for range 2 {
		price, err := f.Quote(context.Background(), "XYZ")
		require.NoError(t, err)
		assert.Equal(t, "101.50", price.String())
	}
	assert.Equal(t, int32(1), hits.Load(), "second request should be served from disk")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	// errors are not cached
	_, err = f.Quote(context.Background(), "UNKNOWN")
	assert.Error(t, err)
	_, err = f.Quote(context.Background(), "UNKNOWN")
	assert.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())
}
