package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

// RateLimitService implements fixed-window rate limiting over a shared
// counter store. Windows are aligned to wall-clock boundaries: every request
// in [windowStart, windowStart+window) increments the same counter, and the
// counter expires with the window.
type RateLimitService struct {
	store ports.CounterStore
	tiers map[string]domain.RateLimitTier
	now   func() time.Time
}

// NewRateLimitService builds a limiter over the given tiers. A `default`
// tier must be present; unknown tier names silently fall back to it rather
// than erroring, so a misconfigured route degrades instead of failing.
func NewRateLimitService(store ports.CounterStore, tiers []domain.RateLimitTier) *RateLimitService {
	m := make(map[string]domain.RateLimitTier, len(tiers))
	for _, t := range tiers {
		m[t.Name] = t
	}
	if _, ok := m[domain.TierDefault]; !ok {
		m[domain.TierDefault] = domain.RateLimitTier{Name: domain.TierDefault, Requests: 100, WindowSeconds: 60}
	}
	return &RateLimitService{store: store, tiers: m, now: time.Now}
}

// Check atomically counts the request against (identifier, tier, window) and
// decides admission. The request that makes the count reach the limit is
// admitted; only the one pushing it over is rejected.
func (s *RateLimitService) Check(ctx context.Context, identifier, tier string) (*domain.RateLimitResult, error) {
	cfg, ok := s.tiers[tier]
	if !ok {
		cfg = s.tiers[domain.TierDefault]
	}

	now := s.now().Unix()
	window := int64(cfg.WindowSeconds)
	windowStart := now - now%window
	key := fmt.Sprintf("ratelimit:%s:%s:%d", identifier, cfg.Name, windowStart)

	count, err := s.store.Increment(ctx, key, time.Duration(cfg.WindowSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("rate limit increment: %w", err)
	}

	remaining := cfg.Requests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &domain.RateLimitResult{
		Limited:   count > int64(cfg.Requests),
		Limit:     cfg.Requests,
		Remaining: remaining,
		ResetAt:   windowStart + window,
		Tier:      cfg.Name,
	}, nil
}
