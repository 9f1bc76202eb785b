package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/alhekamatallam-lgtm/Alwefod/pkg/cache"
)

// TrackingCache is an in-memory cache.Store that counts calls. Values are
// stored as JSON so reads behave like the redis store.
type TrackingCache struct {
	mu       sync.Mutex
	GetCalls int
	SetCalls int
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
	c.GetCalls++
	if entry, exists := c.data[key]; exists && time.Now().Before(entry.Expiry) {
		return json.Unmarshal(entry.Value, dest)
	}
	return cache.ErrMiss
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	c.data[key] = CacheEntry{
		Value:  data,
		Expiry: time.Now().Add(exp),
	}
	return nil
}

func (c *TrackingCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *TrackingCache) Close() error {
	return nil
}

// Has reports whether key holds an unexpired value.
func (c *TrackingCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.data[key]
	return ok && time.Now().Before(entry.Expiry)
}
