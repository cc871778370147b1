package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/godilite/airsat-server/pkg/cache"
)

// TrackingCache is an in-memory cache that counts calls. Values are stored
// as JSON, the way the real backends store them.
type TrackingCache struct {
	mu       sync.Mutex
	getCalls int
	setCalls int
	hits     int
	data     map[string]CacheEntry
}

type CacheEntry struct {
	Value  []byte
	Expiry time.Time
}

func NewTrackingCache() *TrackingCache {
	return &TrackingCache{
		data: make(map[string]CacheEntry),
	}
}

func (c *TrackingCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	entry, exists := c.data[key]
	if !exists || time.Now().After(entry.Expiry) {
		return cache.ErrMiss
	}
	c.hits++
	return json.Unmarshal(entry.Value, dest)
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	c.data[key] = CacheEntry{
		Value:  b,
		Expiry: time.Now().Add(exp),
	}
	return nil
}

func (c *TrackingCache) Close() error {
	return nil
}

// Stats returns the Get, Set and hit counters.
func (c *TrackingCache) Stats() (gets, sets, hits int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getCalls, c.setCalls, c.hits
}

// Len reports how many keys have been stored.
func (c *TrackingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
