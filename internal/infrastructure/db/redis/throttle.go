package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = time.Minute
	throttleMaxAttempts = 10
)

// LoginThrottle rate-limits login attempts per username with a fixed
// Redis-backed window. Key format: login_attempts:<username>
type LoginThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client, limit: throttleMaxAttempts, window: throttleWindow}
}

// Allow records one attempt for the username and reports whether it is
// still within the window's limit. The counter expires window seconds
// after the first attempt.
func (t *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	key := t.key(username)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= t.limit, nil
}

func (t *LoginThrottle) key(username string) string {
	return "login_attempts:" + username
}
