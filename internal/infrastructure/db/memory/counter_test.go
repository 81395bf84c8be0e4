package memory

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCounterStore_Increment(t *testing.T) {
	s := NewCounterStore()

	for want := int64(1); want <= 3; want++ {
		got, err := s.Increment(context.Background(), "k", time.Minute)
		if err != nil {
			t.Fatalf("increment failed: %v", err)
		}
		if got != want {
			t.Fatalf("count = %d, want %d", got, want)
		}
	}

	if got, _ := s.Get(context.Background(), "k"); got != 3 {
		t.Fatalf("get = %d, want 3", got)
	}
	if got, _ := s.Get(context.Background(), "absent"); got != 0 {
		t.Fatalf("get absent = %d, want 0", got)
	}
}

func TestCounterStore_Expiry(t *testing.T) {
	s := NewCounterStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	if _, err := s.Increment(context.Background(), "k", time.Minute); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	s.now = func() time.Time { return base.Add(61 * time.Second) }

	if got, _ := s.Get(context.Background(), "k"); got != 0 {
		t.Fatalf("expired key should read 0, got %d", got)
	}

	// A new increment after expiry restarts the count.
	got, err := s.Increment(context.Background(), "k", time.Minute)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if got != 1 {
		t.Fatalf("count after expiry = %d, want 1", got)
	}
}

func TestCounterStore_Sweep(t *testing.T) {
	s := NewCounterStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	_, _ = s.Increment(context.Background(), "old", time.Second)
	_, _ = s.Increment(context.Background(), "fresh", time.Hour)

	s.now = func() time.Time { return base.Add(time.Minute) }
	s.Sweep()

	if _, ok := s.entries["old"]; ok {
		t.Fatalf("expired entry should be swept")
	}
	if _, ok := s.entries["fresh"]; !ok {
		t.Fatalf("live entry should survive the sweep")
	}
}

func TestCounterStore_ConcurrentIncrements(t *testing.T) {
	s := NewCounterStore()

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Increment(context.Background(), "k", time.Minute); err != nil {
				t.Errorf("increment failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got, _ := s.Get(context.Background(), "k"); got != n {
		t.Fatalf("count = %d, want %d (lost increments)", got, n)
	}
}
