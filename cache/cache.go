package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a byte-payload TTL cache
type Cache interface {
	// Get returns the payload for key and whether it was present
	Get(key string) ([]byte, bool)
	// Set stores payload under key for ttl; ttl 0 uses the default expiration
	Set(key string, payload []byte, ttl time.Duration)
	// Delete removes key from the cache
	Delete(key string)
}

// GoCache is an in-memory Cache backed by patrickmn/go-cache
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates a GoCache with the given default expiration and
// cleanup interval for expired items
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}
	payload, ok := value.([]byte)
	if !ok {
		return nil, false
	}
	return payload, true
}

func (gc *GoCache) Set(key string, payload []byte, ttl time.Duration) {
	gc.cache.Set(key, payload, ttl)
}

func (gc *GoCache) Delete(key string) {
	gc.cache.Delete(key)
}

// ItemCount returns the number of items currently cached
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
