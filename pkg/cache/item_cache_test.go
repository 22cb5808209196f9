package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/libitemsflow/pkg/config"
)

func TestItemKey(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	if got := ItemKey(id); got != "lending:item:550e8400-e29b-41d4-a716-446655440000" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestEncodeDecodeItem(t *testing.T) {
	in := &CachedItem{
		ID:        uuid.New(),
		Name:      "Projector",
		Category:  "AV",
		AssetTag:  "AV-001",
		Location:  "Room 2",
		Status:    "ON_LOAN",
		CreatedAt: time.Date(2024, 3, 15, 9, 30, 0, 123, time.UTC),
	}

	fields := encodeItem(in)
	vals := make(map[string]string, len(fields))
	for k, v := range fields {
		vals[k] = v.(string)
	}

	out, err := decodeItem(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("CreatedAt: got %v, want %v", out.CreatedAt, in.CreatedAt)
	}
	out.CreatedAt, in.CreatedAt = time.Time{}, time.Time{}
	if *out != *in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestDecodeItem_Corrupt(t *testing.T) {
	if _, err := decodeItem(map[string]string{"id": "nope", "created_at": time.Now().Format(time.RFC3339Nano)}); err == nil {
		t.Fatal("expected error for bad id")
	}
	if _, err := decodeItem(map[string]string{"id": uuid.NewString(), "created_at": "yesterday"}); err == nil {
		t.Fatal("expected error for bad created_at")
	}
}

func newMiniredisCache(t *testing.T) *ItemCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return NewItemCache(rc)
}

func testItem() *CachedItem {
	return &CachedItem{ID: uuid.New(), Name: "Laptop", Category: "IT", AssetTag: "LT-9", Status: "AVAILABLE", CreatedAt: time.Now().UTC()}
}

func TestItemCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := newMiniredisCache(t)
	item := testItem()

	_, err := c.Get(ctx, item.ID)
	require.ErrorIs(t, err, redis.Nil)

	epoch, err := c.Epoch(ctx, item.ID)
	require.NoError(t, err)
	assert.Zero(t, epoch)
	require.NoError(t, c.Set(ctx, item, epoch))

	got, err := c.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Name, got.Name)
	assert.Equal(t, item.Status, got.Status)

	require.NoError(t, c.Invalidate(ctx, item.ID))
	_, err = c.Get(ctx, item.ID)
	require.ErrorIs(t, err, redis.Nil)

	epoch, err = c.Epoch(ctx, item.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, epoch)
}

func TestItemCache_SetAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	c := newMiniredisCache(t)
	item := testItem()

	epoch, err := c.Epoch(ctx, item.ID)
	require.NoError(t, err)

	// The item changes between the store read and the cache fill.
	require.NoError(t, c.Invalidate(ctx, item.ID))

	require.ErrorIs(t, c.Set(ctx, item, epoch), ErrStale)
	_, err = c.Get(ctx, item.ID)
	require.ErrorIs(t, err, redis.Nil)

	fresh, err := c.Epoch(ctx, item.ID)
	require.NoError(t, err)
	item.Status = "ON_LOAN"
	require.NoError(t, c.Set(ctx, item, fresh))
	got, err := c.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "ON_LOAN", got.Status)
}

func TestItemCache_SetAppliesTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck
	c := NewItemCache(rc)
	item := testItem()

	require.NoError(t, c.Set(ctx, item, 0))
	assert.Equal(t, ItemCacheTTL, mr.TTL(ItemKey(item.ID)))

	mr.FastForward(ItemCacheTTL + time.Second)
	_, err = c.Get(ctx, item.ID)
	require.ErrorIs(t, err, redis.Nil)
}

func TestItemCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(newTestConfig(redisURL))
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewItemCache(rc)
	item := testItem()

	epoch, err := c.Epoch(ctx, item.ID)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, item, epoch))
	got, err := c.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Name, got.Name)

	require.NoError(t, c.Invalidate(ctx, item.ID))
	_, err = c.Get(ctx, item.ID)
	require.ErrorIs(t, err, redis.Nil)
}
