package cache

import (
	"context"
	"testing"
	"time"
)

func TestNewRedisCacheFailsFastOnUnreachableAddr(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Port 1 is reserved and nothing binds it in test environments, so
	// the initial Ping should fail quickly rather than hang.
	_, err := NewRedisCache(ctx, "127.0.0.1:1")
	if err == nil {
		t.Fatal("expected an error connecting to an unreachable Redis address")
	}
	if !IsRetryable(err) {
		t.Error("connection failure should be wrapped as retryable")
	}
}
