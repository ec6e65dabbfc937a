package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache wraps the redis client. It only holds short-lived coordination
// state: rate-limit counters and run locks.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("successfully connected to Redis")

	return &Cache{
		client: client,
		logger: logger,
	}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// IncrementWithExpiry increments counter and sets TTL if the key has none.
// The window starts at the first increment. A key left without a TTL by an
// earlier failed EXPIRE gets one on the next call.
func (c *Cache) IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	var current *redis.DurationCmd

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		current = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		c.logger.Error("failed to increment with expiry",
			zap.String("key", key),
			zap.Error(err),
		)
		return 0, fmt.Errorf("increment with expiry: %w", err)
	}

	// TTL reports -1 for a key without expiry
	if current.Val() < 0 {
		if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
			c.logger.Error("failed to set expiry",
				zap.String("key", key),
				zap.Error(err),
			)
			return 0, fmt.Errorf("set expiry: %w", err)
		}
	}

	return incr.Val(), nil
}

// AcquireLock sets key to a fresh token if it is not held. The token must be
// passed to ReleaseLock.
func (c *Cache) AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		c.logger.Error("failed to acquire lock",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseLock deletes key only while it still holds token, so a lock that
// expired and was taken by someone else is left alone.
func (c *Cache) ReleaseLock(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, c.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Error("failed to release lock",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
