package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestCache creates a miniredis server and returns a Cache instance
func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	snap, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, snap)
}

func TestCacheSetGet_RoundTrip(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	snap := &MenuSnapshot{
		Categories: []domain.Category{{ID: 1, Name: "Drinks"}},
		Items: []domain.MenuItem{
			{ID: 10, Name: "Tea", Price: 20, CategoryID: 1, IsAvailable: true},
		},
	}
	require.NoError(t, cache.Set(ctx, snap))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Tea", got.Items[0].Name)
	assert.Equal(t, 20.0, got.Items[0].Price)
}

func TestCacheGet_CorruptPayload(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()

	mr.Set(menuCacheKey, "not-json")

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCacheInvalidate(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	data, _ := json.Marshal(&MenuSnapshot{})
	mr.Set(menuCacheKey, string(data))

	require.NoError(t, cache.Invalidate(ctx))

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
