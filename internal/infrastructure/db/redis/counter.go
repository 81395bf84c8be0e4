package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const counterTimeout = 2 * time.Second

// incrWithExpiry atomically increments a counter and sets its expiry on the
// first increment. Running both steps in a single script closes the race
// where a crash between INCR and EXPIRE would leave a counter that never
// expires.
//
// KEYS[1] = counter key, ARGV[1] = ttl in seconds.
var incrWithExpiry = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
	end
	return current
`)

// CounterStore implements the rate limiter's counter backend on Redis. Every
// call carries a bounded timeout so a slow Redis cannot stall the request
// pipeline.
type CounterStore struct {
	client *redis.Client
}

func NewCounterStore(client *redis.Client) *CounterStore {
	return &CounterStore{client: client}
}

// Increment adds one to the counter at key, applying ttl when the key is
// created, and returns the post-increment count.
func (s *CounterStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, counterTimeout)
	defer cancel()

	ttlSeconds := int64(ttl / time.Second)
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	n, err := incrWithExpiry.Run(ctx, s.client, []string{key}, ttlSeconds).Int64()
	if err != nil {
		return 0, fmt.Errorf("counter increment: %w", err)
	}
	return n, nil
}

// Get returns the current counter value, or 0 when the key is absent.
func (s *CounterStore) Get(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, counterTimeout)
	defer cancel()

	n, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counter get: %w", err)
	}
	return n, nil
}
