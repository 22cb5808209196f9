package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// ItemRepository implements repositories.ItemRepository on a Store.
type ItemRepository struct {
	store *Store
}

// NewItemRepository returns an ItemRepository reading and writing store.
func NewItemRepository(store *Store) *ItemRepository {
	return &ItemRepository{store: store}
}

// Save inserts item. IDs are unique; saving an existing ID is an error.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("item %s already stored", item.ID)
	}
	s.items[item.ID] = item.Clone()
	s.itemOrder = append(s.itemOrder, item.ID)
	return nil
}

// GetByID returns a copy of the item or domain.ErrItemNotFound.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return item.Clone(), nil
}

// List returns copies of all items in insertion order.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Item, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		out = append(out, s.items[id].Clone())
	}
	return out, nil
}
