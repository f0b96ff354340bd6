package memory

import (
	"context"
	"sync"
	"time"

	"chatrelay/application/ports"
	"chatrelay/domain/chat"
)

// ThreadCache is a simple in-memory cache for thread records. Warm Lambda
// invocations reuse it to skip the DynamoDB read on every message.
type ThreadCache struct {
	mu    sync.RWMutex
	items map[chat.Identity]cacheItem
}

type cacheItem struct {
	record    chat.ThreadRecord
	expiresAt time.Time
}

// NewThreadCache creates a new in-memory thread cache.
func NewThreadCache() *ThreadCache {
	cache := &ThreadCache{
		items: make(map[chat.Identity]cacheItem),
	}

	// Start cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

var _ ports.ThreadCache = (*ThreadCache)(nil)

// Get retrieves a record from cache.
func (c *ThreadCache) Get(ctx context.Context, identity chat.Identity) (chat.ThreadRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[identity]
	if !exists {
		return chat.ThreadRecord{}, false
	}
	if time.Now().After(item.expiresAt) {
		return chat.ThreadRecord{}, false
	}
	return item.record, true
}

// Set stores a record in cache with TTL in seconds.
func (c *ThreadCache) Set(ctx context.Context, record chat.ThreadRecord, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[record.Identity] = cacheItem{
		record:    record,
		expiresAt: time.Now().Add(time.Duration(ttl) * time.Second),
	}
	return nil
}

// cleanupExpired periodically removes expired items.
func (c *ThreadCache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for identity, item := range c.items {
			if now.After(item.expiresAt) {
				delete(c.items, identity)
			}
		}
		c.mu.Unlock()
	}
}
