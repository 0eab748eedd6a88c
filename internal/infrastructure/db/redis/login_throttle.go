package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "login_failures:"

// LoginThrottle counts failed logins per key in Redis so that the limit holds
// across every API replica.
// Key format: login_failures:<normalized email>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle blocks a key once maxAttempts failures were recorded within
// window. The window restarts with every recorded failure.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, keyPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle get: %w", err)
	}
	return n < t.maxAttempts, nil
}

func (t *LoginThrottle) Fail(ctx context.Context, key string) error {
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, keyPrefix+key)
		pipe.Expire(ctx, keyPrefix+key, t.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login throttle incr: %w", err)
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("login throttle reset: %w", err)
	}
	return nil
}
