// Package rediscache caches rendered cart views in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 15 * time.Minute
	maxJitter  = 5 * time.Minute
)

// CartCache stores one JSON-encoded ports.CartView per user. TTLs carry jitter so entries
// written together do not expire together.
type CartCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewCartCache(client *redis.Client) *CartCache {
	return &CartCache{client: client, baseTTL: defaultTTL}
}

// WithTTL returns a copy using ttl as the base expiry.
func (c *CartCache) WithTTL(ttl time.Duration) *CartCache {
	return &CartCache{client: c.client, baseTTL: ttl}
}

func (c *CartCache) Get(ctx context.Context, userID kernel.UUID) (ports.CartView, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.CartView{}, false, nil
	}
	if err != nil {
		return ports.CartView{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var view ports.CartView
	if err = json.Unmarshal(data, &view); err != nil {
		return ports.CartView{}, false, fmt.Errorf("unmarshal cart view failed: %w", err)
	}
	return view, true, nil
}

func (c *CartCache) Set(ctx context.Context, view ports.CartView) error {
	userID, err := kernel.UUIDFromString(view.UserID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal cart view failed: %w", err)
	}

	ttl := c.baseTTL + rand.N(maxJitter)
	if err = c.client.Set(ctx, cacheKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *CartCache) Invalidate(ctx context.Context, userID kernel.UUID) error {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(userID kernel.UUID) string {
	return "cart:" + userID.String()
}

// NopCartCache never stores anything. It is used when no Redis address is configured.
type NopCartCache struct{}

func (NopCartCache) Get(context.Context, kernel.UUID) (ports.CartView, bool, error) {
	return ports.CartView{}, false, nil
}

func (NopCartCache) Set(context.Context, ports.CartView) error { return nil }

func (NopCartCache) Invalidate(context.Context, kernel.UUID) error { return nil }
