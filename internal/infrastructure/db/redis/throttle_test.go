package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client), mr
}

func TestLoginThrottle_AllowsUpToLimit(t *testing.T) {
	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 1; i <= throttleMaxAttempts; i++ {
		ok, err := throttle.Allow(ctx, "alice")
		if err != nil {
			t.Fatalf("attempt %d errored: %v", i, err)
		}
		if !ok {
			t.Fatalf("attempt %d denied, want allowed", i)
		}
	}

	ok, err := throttle.Allow(ctx, "alice")
	if err != nil {
		t.Fatalf("over-limit attempt errored: %v", err)
	}
	if ok {
		t.Fatalf("attempt %d allowed, want denied", throttleMaxAttempts+1)
	}
}

func TestLoginThrottle_PerUsernameCounters(t *testing.T) {
	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i <= int(throttle.limit); i++ {
		_, _ = throttle.Allow(ctx, "alice")
	}

	ok, err := throttle.Allow(ctx, "bob")
	if err != nil {
		t.Fatalf("bob attempt errored: %v", err)
	}
	if !ok {
		t.Fatalf("alice's counter must not throttle bob")
	}
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	throttle, mr := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i <= int(throttle.limit); i++ {
		_, _ = throttle.Allow(ctx, "alice")
	}
	if ok, _ := throttle.Allow(ctx, "alice"); ok {
		t.Fatalf("expected throttled before window expiry")
	}

	mr.FastForward(throttleWindow + time.Second)

	ok, err := throttle.Allow(ctx, "alice")
	if err != nil {
		t.Fatalf("post-expiry attempt errored: %v", err)
	}
	if !ok {
		t.Fatalf("expected counter reset after window expiry")
	}
}
