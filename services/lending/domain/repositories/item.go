package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Availability is not writable here; see Ledger.
type ItemRepository interface {
	// Save inserts a new Item.
	Save(ctx context.Context, item *models.Item) error

	// GetByID returns domain.ErrItemNotFound when no item has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// List returns every item in insertion order.
	List(ctx context.Context) ([]*models.Item, error)
}
