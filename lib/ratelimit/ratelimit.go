// Package ratelimit provides a keyed limiter used to space out requests
// against each scraping target independently.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Keyed enforces a minimum interval between requests per key. Keys are
// independent: waiting on one platform never delays another. Waiters on
// the same key are served in the order x/time/rate admits them.
type Keyed struct {
	mu       sync.Mutex
	interval time.Duration
	limiters map[string]*rate.Limiter
}

func NewKeyed(interval time.Duration) *Keyed {
	if interval <= 0 {
		interval = time.Second
	}
	return &Keyed{
		interval: interval,
		limiters: map[string]*rate.Limiter{},
	}
}

func (k *Keyed) limiterFor(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.limiters[key]
	if !ok {
		// burst of 1 means every acquisition pays the full interval
		l = rate.NewLimiter(rate.Every(k.interval), 1)
		k.limiters[key] = l
	}
	return l
}

// Await blocks until the key's minimum interval has elapsed since the
// previous Await on the same key, or until ctx is done.
func (k *Keyed) Await(ctx context.Context, key string) error {
	return k.limiterFor(key).Wait(ctx)
}

// Interval reports the configured minimum spacing.
func (k *Keyed) Interval() time.Duration {
	return k.interval
}
