package rediscache_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/rediscache"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*rediscache.CartCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return rediscache.NewCartCache(client), mr
}

func sampleView(userID kernel.UUID) ports.CartView {
	return ports.CartView{
		UserID: userID.String(),
		Items: []ports.CartViewItem{
			{ProductID: kernel.NewUUID().String(), Quantity: 3, UnitPrice: "50000.00", Subtotal: "150000.00"},
		},
		ItemCount:     1,
		TotalQuantity: 3,
		Subtotal:      "150000.00",
	}
}

func TestCartCache_SetThenGet(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := t.Context()
	userID := kernel.NewUUID()
	view := sampleView(userID)

	require.NoError(t, cache.Set(ctx, view))
	got, found, err := cache.Get(ctx, userID)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, view, got)
	assert.True(t, mr.Exists("cart:"+userID.String()))
	ttl := mr.TTL("cart:" + userID.String())
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.Less(t, ttl, 20*time.Minute)
}

func TestCartCache_Miss(t *testing.T) {
	cache, _ := setupCache(t)

	_, found, err := cache.Get(t.Context(), kernel.NewUUID())

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCartCache_Invalidate(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := t.Context()
	userID := kernel.NewUUID()
	require.NoError(t, cache.Set(ctx, sampleView(userID)))

	require.NoError(t, cache.Invalidate(ctx, userID))

	assert.False(t, mr.Exists("cart:"+userID.String()))
	require.NoError(t, cache.Invalidate(ctx, userID))
}

func TestCartCache_CorruptEntry(t *testing.T) {
	cache, mr := setupCache(t)
	userID := kernel.NewUUID()
	require.NoError(t, mr.Set("cart:"+userID.String(), "{not json"))

	_, found, err := cache.Get(t.Context(), userID)

	require.Error(t, err)
	assert.False(t, found)
}

func TestCartCache_ServerDown(t *testing.T) {
	cache, mr := setupCache(t)
	mr.Close()

	_, _, err := cache.Get(t.Context(), kernel.NewUUID())

	require.Error(t, err)
}

func TestCartCache_WithTTL(t *testing.T) {
	cache, mr := setupCache(t)
	userID := kernel.NewUUID()

	require.NoError(t, cache.WithTTL(time.Minute).Set(t.Context(), sampleView(userID)))

	assert.Less(t, mr.TTL("cart:"+userID.String()), 6*time.Minute)
}

func TestNopCartCache(t *testing.T) {
	var cache rediscache.NopCartCache
	ctx := t.Context()
	userID := kernel.NewUUID()

	require.NoError(t, cache.Set(ctx, sampleView(userID)))
	_, found, err := cache.Get(ctx, userID)

	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, cache.Invalidate(ctx, userID))
}
