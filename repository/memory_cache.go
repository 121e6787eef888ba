package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process CacheRepository with per-entry expiry.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after ttl; expired
// entries are purged every cleanupInterval.
func NewMemoryCache(ttl, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		items: gocache.New(ttl, cleanupInterval),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	val, ok := m.items.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.items.SetDefault(key, value)
	return nil
}

// Len reports the number of entries, expired ones included until purged.
func (m *MemoryCache) Len() int {
	return m.items.ItemCount()
}
