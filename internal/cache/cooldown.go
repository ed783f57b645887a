package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownGuard rate-limits repeatable actions (verification-code resends)
// server-side. Client-side throttling alone is not a guarantee.
type CooldownGuard interface {
	// Allow reports whether the action keyed by key may run now, and if so
	// atomically starts a new cooldown window.
	Allow(ctx context.Context, key string) (bool, error)
}

type RedisCooldownGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCooldownGuard(client *redis.Client, ttl time.Duration) *RedisCooldownGuard {
	return &RedisCooldownGuard{client: client, ttl: ttl}
}

func (g *RedisCooldownGuard) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, cooldownKey(key), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	return ok, nil
}

func cooldownKey(key string) string {
	return fmt.Sprintf("cooldown:%s", key)
}
