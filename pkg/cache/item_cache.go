package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items. Entries are also
	// deleted whenever a loan changes the item's availability.
	ItemCacheTTL = 10 * time.Minute

	// itemEpochTTL outlives any store read a cache fill can be waiting on.
	itemEpochTTL = time.Hour

	itemCacheKeyPrefix = "lending:item"
)

// CachedItem is the denormalized item read model stored in Redis as a hash.
type CachedItem struct {
	ID        uuid.UUID
	Name      string
	Category  string
	AssetTag  string
	Location  string
	Note      string
	Status    string
	CreatedAt time.Time
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "lending:item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, ItemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return decodeItem(vals)
}

// ErrStale is returned by Set when the item was invalidated after the
// caller read its epoch. The snapshot is dropped.
var ErrStale = errors.New("cache: item invalidated while loading")

// Epoch returns the item's invalidation counter, 0 if it was never
// invalidated. Read it before loading the item from the store and pass it
// to Set.
func (c *ItemCache) Epoch(ctx context.Context, itemID uuid.UUID) (int64, error) {
	n, err := c.client.Client().Get(ctx, epochKey(itemID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache epoch: %w", err)
	}
	return n, nil
}

// Set writes item as a Redis hash with ItemCacheTTL, but only while the
// epoch key still holds epoch. WATCH aborts the MULTI/EXEC when an
// Invalidate lands in between.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem, epoch int64) error {
	key, ek := ItemKey(item.ID), epochKey(item.ID)
	err := c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, ek).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != epoch {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, encodeItem(item))
			pipe.Expire(ctx, key, ItemCacheTTL)
			return nil
		})
		return err
	}, ek)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("cache set: %w", err)
	}
}

// Invalidate deletes the cached item and bumps its epoch so that loads
// already in flight cannot write their snapshot back.
func (c *ItemCache) Invalidate(ctx context.Context, itemID uuid.UUID) error {
	ek := epochKey(itemID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, ItemKey(itemID))
	pipe.Incr(ctx, ek)
	pipe.Expire(ctx, ek, itemEpochTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// ItemKey builds the Redis key for an item.
func ItemKey(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}

func epochKey(itemID uuid.UUID) string {
	return ItemKey(itemID) + ":epoch"
}

func encodeItem(item *CachedItem) map[string]any {
	return map[string]any{
		"id":         item.ID.String(),
		"name":       item.Name,
		"category":   item.Category,
		"asset_tag":  item.AssetTag,
		"location":   item.Location,
		"note":       item.Note,
		"status":     item.Status,
		"created_at": item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	return &CachedItem{
		ID:        id,
		Name:      vals["name"],
		Category:  vals["category"],
		AssetTag:  vals["asset_tag"],
		Location:  vals["location"],
		Note:      vals["note"],
		Status:    vals["status"],
		CreatedAt: createdAt,
	}, nil
}
