package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/libitemsflow/pkg/cache"
	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/pkg/logger"
	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	domainsvcs "github.com/ghuser/libitemsflow/services/lending/domain/services"
)

// CreateItemInput carries the caller-supplied fields of a new item. Status
// may be empty or AVAILABLE; availability is never set by callers.
type CreateItemInput struct {
	Name     string
	Category string
	AssetTag string
	Location string
	Note     string
	Status   string
}

// ItemRegistry owns item records. It never changes availability; only the
// LoanLedger does, through a Ledger unit of work.
// Reads are served from Redis cache when available.
type ItemRegistry struct {
	repo    repositories.ItemRepository
	cache   *pkgcache.ItemCache
	clock   clock.Clock
	log     logger.Logger
	metrics *metrics
}

// NewItemRegistry returns an ItemRegistry. itemCache may be nil.
func NewItemRegistry(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache, clk clock.Clock, log logger.Logger) *ItemRegistry {
	return &ItemRegistry{repo: repo, cache: itemCache, clock: clk, log: log, metrics: newMetrics()}
}

// Create validates and persists an AVAILABLE item. With the postgres store
// the repository publishes ItemCreatedEvent in the same transaction.
func (s *ItemRegistry) Create(ctx context.Context, in CreateItemInput) (_ *models.Item, err error) {
	ctx, span := tracer.Start(ctx, "ItemRegistry.Create")
	defer func() {
		s.metrics.recordError(ctx, "create_item", err)
		endSpan(span, err)
	}()

	name, err := models.NewItemName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if st := strings.TrimSpace(in.Status); st != "" && models.ItemStatus(st) != models.ItemAvailable {
		return nil, fmt.Errorf("%w: new items must be %s, got %q", domain.ErrValidation, models.ItemAvailable, st)
	}

	item := models.NewItem(name, models.ItemDetails{
		Category: strings.TrimSpace(in.Category),
		AssetTag: strings.TrimSpace(in.AssetTag),
		Location: strings.TrimSpace(in.Location),
		Note:     in.Note,
	}, s.clock.Now())

	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	inc(ctx, s.metrics.itemsCreated)
	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "asset_tag", item.AssetTag)
	return item, nil
}

// Get retrieves an Item through the Redis cache when one is configured.
// On a miss the item is loaded from the store and written back before
// returning, guarded by the cache epoch so a concurrent loan cannot be
// overwritten with the earlier availability.
func (s *ItemRegistry) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache == nil {
		return s.load(ctx, id)
	}

	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		return fromCache(cached), nil
	}
	if !errors.Is(err, redis.Nil) {
		s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
	}

	epoch, epochErr := s.cache.Epoch(ctx, id)
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if epochErr != nil {
		s.log.WarnContext(ctx, "item cache epoch read failed", "item_id", id, "error", epochErr)
		return item, nil
	}
	s.fill(ctx, item, epoch)
	return item, nil
}

func (s *ItemRegistry) load(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns every item with its current availability in insertion order.
func (s *ItemRegistry) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Refresh rewrites the cached read model of an item from the store. The
// worker calls it for every outbox event that touches an item.
func (s *ItemRegistry) Refresh(ctx context.Context, id uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	epoch, err := s.cache.Epoch(ctx, id)
	if err != nil {
		return fmt.Errorf("refresh item: %w", err)
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return s.cache.Invalidate(ctx, id)
		}
		return fmt.Errorf("refresh item: %w", err)
	}
	// A newer invalidation already emptied the entry; the next read fills it.
	if err := s.cache.Set(ctx, toCache(item), epoch); err != nil && !errors.Is(err, pkgcache.ErrStale) {
		return fmt.Errorf("refresh item: %w", err)
	}
	return nil
}

// invalidate drops the cached read model after availability changed and
// fences off fills that read the store before the change.
func (s *ItemRegistry) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", id, "error", err)
	}
}

func (s *ItemRegistry) fill(ctx context.Context, item *models.Item, epoch int64) {
	err := s.cache.Set(ctx, toCache(item), epoch)
	switch {
	case err == nil:
	case errors.Is(err, pkgcache.ErrStale):
		s.log.DebugContext(ctx, "item cache fill skipped, item changed", "item_id", item.ID)
	default:
		s.log.WarnContext(ctx, "item cache fill failed", "item_id", item.ID, "error", err)
	}
}

func toCache(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:        item.ID,
		Name:      item.Name.String(),
		Category:  item.Category,
		AssetTag:  item.AssetTag,
		Location:  item.Location,
		Note:      item.Note,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt,
	}
}

func fromCache(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:        c.ID,
		Name:      models.ItemName(c.Name),
		Category:  c.Category,
		AssetTag:  c.AssetTag,
		Location:  c.Location,
		Note:      c.Note,
		Status:    models.ItemStatus(c.Status),
		CreatedAt: c.CreatedAt,
	}
}
