// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package cache provides a thread-safe LRU cache with hit/miss stats.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/atomic"
)

// ThreadSafeLruCache defines a thread-safe LRU cache, 0 (or negative) maxEntries means no eviction
type ThreadSafeLruCache struct {
	mu         sync.RWMutex
	cache      *lru.Cache[string, interface{}]
	unbounded  map[string]interface{}
	maxEntries int
	hits       atomic.Uint64
	misses     atomic.Uint64
}

// NewThreadSafeLruCache returns a new ThreadSafeLruCache
func NewThreadSafeLruCache(maxEntries int) *ThreadSafeLruCache {
	c := &ThreadSafeLruCache{
		maxEntries: maxEntries,
	}
	if maxEntries > 0 {
		// error is only possible with non-positive size
		c.cache, _ = lru.New[string, interface{}](maxEntries)
	} else {
		c.unbounded = make(map[string]interface{})
	}
	return c
}

// Add adds a value to the cache
func (c *ThreadSafeLruCache) Add(key string, value interface{}) {
	if c.cache != nil {
		c.cache.Add(key, value)
		return
	}
	c.mu.Lock()
	c.unbounded[key] = value
	c.mu.Unlock()
}

// Get looks up a key's value from the cache
func (c *ThreadSafeLruCache) Get(key string) (interface{}, bool) {
	var (
		value interface{}
		ok    bool
	)
	if c.cache != nil {
		value, ok = c.cache.Get(key)
	} else {
		c.mu.RLock()
		value, ok = c.unbounded[key]
		c.mu.RUnlock()
	}
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return value, ok
}

// Remove removes the provided key from the cache
func (c *ThreadSafeLruCache) Remove(key string) bool {
	if c.cache != nil {
		return c.cache.Remove(key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.unbounded[key]; !ok {
		return false
	}
	delete(c.unbounded, key)
	return true
}

// Clear purges all stored items from the cache
func (c *ThreadSafeLruCache) Clear() {
	if c.cache != nil {
		c.cache.Purge()
		return
	}
	c.mu.Lock()
	c.unbounded = make(map[string]interface{})
	c.mu.Unlock()
}

// Len returns the number of items in the cache
func (c *ThreadSafeLruCache) Len() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.unbounded)
}

// Hits returns the number of cache hits
func (c *ThreadSafeLruCache) Hits() uint64 { return c.hits.Load() }

// Misses returns the number of cache misses
func (c *ThreadSafeLruCache) Misses() uint64 { return c.misses.Load() }
