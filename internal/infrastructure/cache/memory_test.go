package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func newConnectedMemory(t *testing.T) *MemoryBackend {
	t.Helper()
	b := NewMemoryBackend(nil)
	if err := b.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	return b
}

func TestMemoryGetSetRoundTrip(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	if !b.Set(ctx, "k", []byte(`{"a":1}`), time.Minute) {
		t.Fatal("set failed")
	}
	got, ok := b.Get(ctx, "k")
	if !ok || string(got) != `{"a":1}` {
		t.Fatalf("get = %q, %v", got, ok)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "k", []byte("v1"), time.Minute)
	b.Set(ctx, "k", []byte("v2"), time.Minute)
	got, ok := b.Get(ctx, "k")
	if !ok || string(got) != "v2" {
		t.Fatalf("expected last set to win, got %q, %v", got, ok)
	}
}

func TestMemoryExpiryBoundary(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "k", []byte("v"), 50*time.Millisecond)
	if _, ok := b.Get(ctx, "k"); !ok {
		t.Fatal("entry must be retrievable before expiry")
	}
	time.Sleep(60 * time.Millisecond)
	if _, ok := b.Get(ctx, "k"); ok {
		t.Fatal("entry must be absent at/after expiry")
	}
	// Lazy eviction: the expired read removed the entry physically too.
	keys, _ := b.store.snapshot()
	if keys != 0 {
		t.Fatalf("expired entry not evicted, %d keys remain", keys)
	}
}

func TestMemoryNonPositiveTTLIsAlreadyExpired(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "zero", []byte("v"), 0)
	b.Set(ctx, "neg", []byte("v"), -time.Second)
	if _, ok := b.Get(ctx, "zero"); ok {
		t.Fatal("ttl=0 must mean already expired, not immortal")
	}
	if _, ok := b.Get(ctx, "neg"); ok {
		t.Fatal("negative ttl must mean already expired")
	}
}

func TestMemoryClearMatchingScoping(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "products:abc", []byte("x"), time.Minute)
	b.Set(ctx, "product:xyz", []byte("y"), time.Minute)

	if !b.ClearMatching(ctx, "products:*") {
		t.Fatal("clear failed")
	}
	if _, ok := b.Get(ctx, "products:abc"); ok {
		t.Fatal("products:* should have removed products:abc")
	}
	got, ok := b.Get(ctx, "product:xyz")
	if !ok || string(got) != "y" {
		t.Fatal("products:* must not touch the product namespace")
	}
}

func TestMemoryClearExactMatch(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "x", []byte("v"), time.Minute)
	b.Set(ctx, "xy", []byte("v"), time.Minute)
	b.ClearMatching(ctx, "x")
	if _, ok := b.Get(ctx, "x"); ok {
		t.Fatal("exact pattern should remove the key")
	}
	if _, ok := b.Get(ctx, "xy"); !ok {
		t.Fatal("exact pattern must not remove other keys")
	}
}

func TestMemoryUniversalClear(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "a:1", []byte("v"), time.Minute)
	b.Set(ctx, "b:2", []byte("v"), time.Minute)
	b.ClearMatching(ctx, "*")
	if _, ok := b.Get(ctx, "a:1"); ok {
		t.Fatal("universal clear left a key behind")
	}
	if _, ok := b.Get(ctx, "b:2"); ok {
		t.Fatal("universal clear left a key behind")
	}
}

func TestMemoryDisconnectedDegrades(t *testing.T) {
	b := NewMemoryBackend(nil)
	ctx := context.Background()
	b.Connect(ctx)
	b.Set(ctx, "k", []byte("v"), time.Minute)
	b.Disconnect(ctx)

	if _, ok := b.Get(ctx, "k"); ok {
		t.Fatal("disconnected get must miss")
	}
	if b.Set(ctx, "k", []byte("v"), time.Minute) {
		t.Fatal("disconnected set must fail")
	}
	if b.Delete(ctx, "k") {
		t.Fatal("disconnected delete must fail")
	}
	if b.ClearMatching(ctx, "*") {
		t.Fatal("disconnected clear must fail")
	}
	if st := b.Stats(ctx); st.Status != "disconnected" {
		t.Fatalf("stats status = %q", st.Status)
	}
}

func TestMemoryStatsLifecycle(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "x", []byte(`{"a":1}`), 5*time.Minute)
	st := b.Stats(ctx)
	if st.Keys < 1 {
		t.Fatalf("stats keys = %d, want >= 1", st.Keys)
	}
	if st.MemoryBytes <= 0 {
		t.Fatal("expected a memory estimate")
	}
	before := st.Keys

	if v, ok := b.Get(ctx, "x"); !ok || string(v) != `{"a":1}` {
		t.Fatalf("get = %q, %v", v, ok)
	}
	b.ClearMatching(ctx, "x") // exact match, no wildcard
	if _, ok := b.Get(ctx, "x"); ok {
		t.Fatal("cleared key still retrievable")
	}
	st = b.Stats(ctx)
	if st.Keys != before-1 {
		t.Fatalf("key count = %d, want %d", st.Keys, before-1)
	}
	if !st.Tracked {
		t.Fatal("memory backend tracks hit/miss counters")
	}
	if st.Hits < 1 || st.Misses < 1 {
		t.Fatalf("counters not updated: hits=%d misses=%d", st.Hits, st.Misses)
	}
}

func TestMemoryStatsSweepsExpired(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	b.Set(ctx, "live", []byte("v"), time.Minute)
	b.Set(ctx, "dead", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	// No read of "dead" happens; the stats sweep must still exclude it.
	if st := b.Stats(ctx); st.Keys != 1 {
		t.Fatalf("stats keys = %d, want 1", st.Keys)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	b := newConnectedMemory(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := DeriveKey("ns", map[string]any{"worker": n, "j": j % 10})
				b.Set(ctx, key, []byte("v"), time.Millisecond*time.Duration(j%5))
				b.Get(ctx, key)
				if j%50 == 0 {
					b.ClearMatching(ctx, "ns:*")
				}
			}
		}(i)
	}
	wg.Wait()
	b.Stats(ctx)
}

func TestGlobMatch(t *testing.T) {
	cases := []struct {
		pattern, s string
		want       bool
	}{
		{"products:*", "products:abc", true},
		{"products:*", "product:abc", false},
		{"*", "anything", true},
		{"user:42:*", "user:42:favorites", true},
		{"user:42:*", "user:421:favorites", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
		{"a*c", "abc", true},
		{"a*c", "ac", true},
		{"a*c", "ab", false},
		{"a*b*c", "axxbyyc", true},
		{"a*a", "a", false},
	}
	for _, tc := range cases {
		if got := globMatch(tc.pattern, tc.s); got != tc.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", tc.pattern, tc.s, got, tc.want)
		}
	}
}
