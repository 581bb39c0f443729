// Package cache provides an in-memory TTL cache for search responses so
// repeated identical queries do not re-hit the retail sites.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  *models.SearchResponse
	createdAt time.Time
}

// Cache is a bounded in-memory cache for search responses.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache holding at most maxEntries responses for ttl each.
// A background goroutine periodically evicts expired entries.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from the search parameters. Platform order is
// normalized so "walmart,bestbuy" and "bestbuy,walmart" share an entry.
func Key(query, region string, platformIDs []string, maxResults int) string {
	ids := make([]string, len(platformIDs))
	for i, id := range platformIDs {
		ids[i] = strings.ToLower(strings.TrimSpace(id))
	}
	sort.Strings(ids)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d", strings.ToLower(strings.TrimSpace(query)), region, strings.Join(ids, ","), maxResults)
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached response if it exists and has not expired.
func (c *Cache) Get(key string) (*models.SearchResponse, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.response, true
}

// Set stores a response in the cache. If the cache is at capacity,
// a random entry is evicted to make room.
func (c *Cache) Set(key string, resp *models.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		response:  resp,
		createdAt: time.Now(),
	}
}

// Len reports the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// cleanupLoop evicts expired entries once per TTL period.
func (c *Cache) cleanupLoop() {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
