// Package quote resolves symbols to prices before they are handed to the
// engine. Quotes come from an HTTP JSON endpoint and are kept in an injected
// Cache.
package quote

import (
	"sync"
	"time"

	"github.com/etnz/wheel"
)

// Cache stores quotes by symbol.
type Cache interface {
	// Get returns the cached quote of symbol, if still fresh.
	Get(symbol string) (wheel.Money, bool)
	// Put stores the quote of symbol.
	Put(symbol string, price wheel.Money)
}

type entry struct {
	price wheel.Money
	at    time.Time
}

// MemoryCache is a Cache in memory whose entries expire after a TTL.
// It is safe for concurrent use.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewMemoryCache returns a MemoryCache. A zero ttl never expires.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *MemoryCache) Get(symbol string) (wheel.Money, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[symbol]
	if !ok {
		return wheel.Money{}, false
	}
	if c.ttl > 0 && c.now().Sub(e.at) > c.ttl {
		delete(c.entries, symbol)
		return wheel.Money{}, false
	}
	return e.price, true
}

func (c *MemoryCache) Put(symbol string, price wheel.Money) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = entry{price: price, at: c.now()}
}

// Len returns the number of entries, fresh or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// noCache never holds anything.
type noCache struct{}

func (noCache) Get(string) (wheel.Money, bool) { return wheel.Money{}, false }
func (noCache) Put(string, wheel.Money)        {}
