package data

import (
	"fmt"
	"sync"
	"time"

	"rsu-backtest/internal/model"
)

// Cache memoizes PriceSource results per (ticker, window) for the lifetime of
// one run. Grant-quantity derivation fetches each grant's issuance month and
// the time-series aggregation fetches each ticker's full analysis window;
// sharing one Cache across both removes redundant calls.
type Cache struct {
	src PriceSource

	mu    sync.RWMutex
	store map[string][]model.PriceBar
}

func NewCache(src PriceSource) *Cache {
	return &Cache{
		src:   src,
		store: make(map[string][]model.PriceBar),
	}
}

func (c *Cache) History(ticker string, start, end time.Time) ([]model.PriceBar, error) {
	key := cacheKey(ticker, start, end)

	c.mu.RLock()
	bars, ok := c.store[key]
	c.mu.RUnlock()
	if ok {
		return bars, nil
	}

	bars, err := c.src.History(ticker, start, end)
	if err != nil {
		// Errors (including empty windows) are not cached; a fresh run
		// should hit the source again.
		return nil, err
	}

	c.mu.Lock()
	c.store[key] = bars
	c.mu.Unlock()
	return bars, nil
}

func cacheKey(ticker string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s", ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
