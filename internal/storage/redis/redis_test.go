package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New(mr.Addr(), "", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestIncrementLLMRateLimit(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.IncrementLLMRateLimit(ctx)
		if err != nil {
			t.Fatalf("increment error: %v", err)
		}
		if n != i {
			t.Fatalf("count = %d, want %d", n, i)
		}
	}

	if ttl := mr.TTL(LLMRateLimitKey()); ttl <= 0 || ttl > RateLimitWindowTTL {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(RateLimitWindowTTL + time.Second)

	n, err := c.IncrementLLMRateLimit(ctx)
	if err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if n != 1 {
		t.Fatalf("window should reset, got %d", n)
	}
}

func TestOnboardRateLimitIsPerClient(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.IncrementOnboardRateLimit(ctx, "user-a")
	c.IncrementOnboardRateLimit(ctx, "user-a")
	n, err := c.IncrementOnboardRateLimit(ctx, "user-b")
	if err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if n != 1 {
		t.Fatalf("user-b count = %d, want 1", n)
	}
}

func TestIncrementRestoresMissingExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	// a counter stranded without a TTL
	key := OnboardRateLimitKey("user-a")
	mr.Set(key, "31")

	n, err := c.IncrementOnboardRateLimit(ctx, "user-a")
	if err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if n != 32 {
		t.Fatalf("count = %d, want 32", n)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > RateLimitWindowTTL {
		t.Fatalf("ttl = %v, want a window ttl", ttl)
	}

	mr.FastForward(RateLimitWindowTTL + time.Second)
	if mr.Exists(key) {
		t.Fatal("counter should expire after the window")
	}
}

func TestIncrementKeepsWindowStart(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.IncrementLLMRateLimit(ctx)
	mr.FastForward(RateLimitWindowTTL / 2)
	c.IncrementLLMRateLimit(ctx)

	if ttl := mr.TTL(LLMRateLimitKey()); ttl > RateLimitWindowTTL/2 {
		t.Fatalf("ttl = %v, later increments must not extend the window", ttl)
	}
}

func TestRecheckLock(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	token, ok, err := c.AcquireRecheckLock(ctx, time.Minute)
	if err != nil || !ok || token == "" {
		t.Fatalf("first acquire = %q %v %v", token, ok, err)
	}

	if _, ok, err := c.AcquireRecheckLock(ctx, time.Minute); err != nil || ok {
		t.Fatalf("second acquire should fail, got %v %v", ok, err)
	}

	// a stale token must not release someone else's lock
	if err := c.ReleaseRecheckLock(ctx, "stale"); err != nil {
		t.Fatalf("release error: %v", err)
	}
	if !mr.Exists(RecheckLockKey()) {
		t.Fatal("lock released by wrong token")
	}

	if err := c.ReleaseRecheckLock(ctx, token); err != nil {
		t.Fatalf("release error: %v", err)
	}
	if mr.Exists(RecheckLockKey()) {
		t.Fatal("lock still held after release")
	}

	if _, ok, _ := c.AcquireRecheckLock(ctx, time.Minute); !ok {
		t.Fatal("lock should be free again")
	}
}

func TestRecheckLockExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if _, ok, _ := c.AcquireRecheckLock(ctx, time.Minute); !ok {
		t.Fatal("acquire failed")
	}
	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.AcquireRecheckLock(ctx, time.Minute); !ok {
		t.Fatal("expired lock should be acquirable")
	}
}
