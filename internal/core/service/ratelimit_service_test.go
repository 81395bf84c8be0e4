package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/infrastructure/db/memory"
)

func testTiers() []domain.RateLimitTier {
	return []domain.RateLimitTier{
		{Name: domain.TierDefault, Requests: 5, WindowSeconds: 60},
		{Name: domain.TierChat, Requests: 3, WindowSeconds: 60},
	}
}

func TestRateLimitService_BoundaryAdmission(t *testing.T) {
	svc := NewRateLimitService(memory.NewCounterStore(), testTiers())

	// Exactly `requests` calls within one window are all admitted; the call
	// that reaches the limit still passes.
	for i := 1; i <= 5; i++ {
		res, err := svc.Check(context.Background(), "ip:1.2.3.4", domain.TierDefault)
		if err != nil {
			t.Fatalf("check %d failed: %v", i, err)
		}
		if res.Limited {
			t.Fatalf("call %d should be admitted", i)
		}
		if want := 5 - i; res.Remaining != want {
			t.Fatalf("call %d: remaining = %d, want %d", i, res.Remaining, want)
		}
	}

	// The request pushing the count over the limit is rejected.
	res, err := svc.Check(context.Background(), "ip:1.2.3.4", domain.TierDefault)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !res.Limited {
		t.Fatalf("call 6 should be rejected")
	}
	if res.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", res.Remaining)
	}
	if res.Limit != 5 {
		t.Fatalf("limit = %d, want 5", res.Limit)
	}
}

func TestRateLimitService_WindowReset(t *testing.T) {
	store := memory.NewCounterStore()
	svc := NewRateLimitService(store, testTiers())

	base := time.Date(2026, 8, 31, 12, 0, 30, 0, time.UTC)
	svc.now = func() time.Time { return base }

	for i := 0; i < 6; i++ {
		if _, err := svc.Check(context.Background(), "user:alice", domain.TierDefault); err != nil {
			t.Fatalf("check failed: %v", err)
		}
	}
	res, _ := svc.Check(context.Background(), "user:alice", domain.TierDefault)
	if !res.Limited {
		t.Fatalf("expected limit in window N")
	}

	wantReset := base.Unix() - base.Unix()%60 + 60
	if res.ResetAt != wantReset {
		t.Fatalf("resetAt = %d, want %d", res.ResetAt, wantReset)
	}

	// Start of the next window: a fresh counter, same identifier admitted at
	// count 1.
	svc.now = func() time.Time { return time.Unix(wantReset, 0).UTC() }

	res, err := svc.Check(context.Background(), "user:alice", domain.TierDefault)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Limited {
		t.Fatalf("first call of window N+1 should be admitted")
	}
	if res.Remaining != 4 {
		t.Fatalf("remaining = %d, want 4", res.Remaining)
	}
}

func TestRateLimitService_UnknownTierFallsBack(t *testing.T) {
	svc := NewRateLimitService(memory.NewCounterStore(), testTiers())

	res, err := svc.Check(context.Background(), "ip:1.2.3.4", "no-such-tier")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Tier != domain.TierDefault {
		t.Fatalf("tier = %q, want fallback to %q", res.Tier, domain.TierDefault)
	}
	if res.Limit != 5 {
		t.Fatalf("limit = %d, want default tier limit 5", res.Limit)
	}
}

func TestRateLimitService_TiersAreIsolated(t *testing.T) {
	svc := NewRateLimitService(memory.NewCounterStore(), testTiers())

	// Exhaust the chat tier; the default tier for the same identifier must
	// be unaffected.
	for i := 0; i < 4; i++ {
		if _, err := svc.Check(context.Background(), "user:alice", domain.TierChat); err != nil {
			t.Fatalf("check failed: %v", err)
		}
	}
	res, _ := svc.Check(context.Background(), "user:alice", domain.TierChat)
	if !res.Limited {
		t.Fatalf("chat tier should be exhausted")
	}

	res, err := svc.Check(context.Background(), "user:alice", domain.TierDefault)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Limited {
		t.Fatalf("default tier must not share the chat tier counter")
	}
}

func TestRateLimitService_ConcurrentAdmission(t *testing.T) {
	const limit = 50
	svc := NewRateLimitService(memory.NewCounterStore(), []domain.RateLimitTier{
		{Name: domain.TierDefault, Requests: limit, WindowSeconds: 3600},
	})

	// The long window guarantees all calls land in the same window, so the
	// outcome split must be exact.
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, rejected := 0, 0

	for i := 0; i < 2*limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Check(context.Background(), "user:alice", domain.TierDefault)
			if err != nil {
				t.Errorf("check failed: %v", err)
				return
			}
			mu.Lock()
			if res.Limited {
				rejected++
			} else {
				admitted++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if admitted != limit || rejected != limit {
		t.Fatalf("admitted %d, rejected %d; want exactly %d each", admitted, rejected, limit)
	}
}
