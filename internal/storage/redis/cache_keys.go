package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	RateLimitWindowTTL = 1 * time.Minute
)

func LLMRateLimitKey() string {
	return "ratelimit:llm"
}

func OnboardRateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:onboard:%s", client)
}

func RecheckLockKey() string {
	return "lock:recheck"
}

func (c *Cache) IncrementLLMRateLimit(ctx context.Context) (int64, error) {
	return c.IncrementWithExpiry(ctx, LLMRateLimitKey(), RateLimitWindowTTL)
}

func (c *Cache) IncrementOnboardRateLimit(ctx context.Context, client string) (int64, error) {
	return c.IncrementWithExpiry(ctx, OnboardRateLimitKey(client), RateLimitWindowTTL)
}

// AcquireRecheckLock returns the lock token and true when no other recheck
// run holds the lock.
func (c *Cache) AcquireRecheckLock(ctx context.Context, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.AcquireLock(ctx, RecheckLockKey(), token, ttl)
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (c *Cache) ReleaseRecheckLock(ctx context.Context, token string) error {
	return c.ReleaseLock(ctx, RecheckLockKey(), token)
}
