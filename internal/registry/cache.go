package registry

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// cacheEntry holds one cached search response with its expiration time.
type cacheEntry struct {
	records   []types.PackageRecord
	expiresAt time.Time
}

// queryCache is an in-memory LRU of search responses keyed by query and
// limit. Entries expire after a fixed TTL; there is no persistence.
type queryCache struct {
	lru *lru.Cache[string, *cacheEntry]
	ttl time.Duration
}

func newQueryCache(size int, ttl time.Duration) *queryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *cacheEntry](size)
	if err != nil {
		// Only reachable with a non-positive size, which is guarded above.
		cache, _ = lru.New[string, *cacheEntry](DefaultCacheSize)
	}
	return &queryCache{lru: cache, ttl: ttl}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("%s|%d", query, limit)
}

// get returns a copy of the cached records so callers can mutate freely.
func (c *queryCache) get(query string, limit int) ([]types.PackageRecord, bool) {
	entry, ok := c.lru.Get(cacheKey(query, limit))
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(cacheKey(query, limit))
		return nil, false
	}

	records := make([]types.PackageRecord, len(entry.records))
	copy(records, entry.records)
	return records, true
}

func (c *queryCache) set(query string, limit int, records []types.PackageRecord) {
	stored := make([]types.PackageRecord, len(records))
	copy(stored, records)
	c.lru.Add(cacheKey(query, limit), &cacheEntry{
		records:   stored,
		expiresAt: time.Now().Add(c.ttl),
	})
}
