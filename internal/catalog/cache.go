package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const menuCacheKey = "menu:storefront"

// MenuSnapshot is the cached storefront view: sorted categories plus
// available items only.
type MenuSnapshot struct {
	Categories []domain.Category `json:"categories"`
	Items      []domain.MenuItem `json:"items"`
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

type Cache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (c *Cache) Get(ctx context.Context) (*MenuSnapshot, error) {
	data, err := c.client.Get(ctx, menuCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snap MenuSnapshot
	if err2 := json.Unmarshal(data, &snap); err2 != nil {
		return nil, fmt.Errorf("unmarshal menu snapshot failed: %w", err2)
	}
	return &snap, nil
}

func (c *Cache) Set(ctx context.Context, snap *MenuSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal menu snapshot failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(30)) * time.Second
	ttl := c.baseTTL + jitter
	if err := c.client.Set(ctx, menuCacheKey, string(data), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached menu. Called after every admin mutation so
// the next storefront load re-derives from the store.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, menuCacheKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
