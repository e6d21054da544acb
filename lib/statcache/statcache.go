// Package statcache is the in-process tier of the statistics cache. It
// only exists to collapse bursts of identical reads, the persisted cache
// in the statistics store is the one that survives restarts.
package statcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultTTL = time.Minute * 5
const DefaultSize = 8192

type Cache[T any] struct {
	lru *expirable.LRU[string, T]
}

func New[T any](size int, ttl time.Duration) *Cache[T] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{
		lru: expirable.NewLRU[string, T](size, nil, ttl),
	}
}

// Key builds the cache key for one scraped profile.
func Key(platform, username string) string {
	return platform + ":" + username
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.lru.Get(key)
}

func (c *Cache[T]) Add(key string, value T) {
	c.lru.Add(key, value)
}

func (c *Cache[T]) Remove(key string) {
	c.lru.Remove(key)
}

func (c *Cache[T]) Purge() {
	c.lru.Purge()
}
