package ports

import (
	"context"
	"time"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

// CounterStore is the shared counter backend used by the rate limiter.
// Increment must be atomic across concurrent callers; a read-modify-write
// implementation would let concurrent requests exceed the limit.
type CounterStore interface {
	// Increment adds one to the counter at key and returns the new value.
	// When the increment creates the key, ttl is applied to it.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Get returns the current value of the counter, or 0 when absent.
	Get(ctx context.Context, key string) (int64, error)
}

// RateLimiter decides whether a request identified by identifier is admitted
// under the named tier.
type RateLimiter interface {
	Check(ctx context.Context, identifier, tier string) (*domain.RateLimitResult, error)
}
