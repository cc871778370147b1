package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is a bounded in-process cache. Values are stored JSON-encoded so
// callers get the same copy semantics as with Redis.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory creates a cache holding at most size entries, each expiring
// after ttl. A ttl of zero disables expiry.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1024
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get ignores ctx; lookups never block.
func (c *Memory) Get(_ context.Context, key string, dest any) error {
	data, ok := c.lru.Get(key)
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(data, dest)
}

// Set stores value under key. The per-entry expiration is ignored in favour
// of the ttl the cache was created with.
func (c *Memory) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.lru.Add(key, data)
	return nil
}

func (c *Memory) Len() int { return c.lru.Len() }

func (c *Memory) Close() error {
	c.lru.Purge()
	return nil
}

// Noop never stores anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, any) error                 { return ErrMiss }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Close() error                                           { return nil }
