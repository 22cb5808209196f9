package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/pkg/database"
	"github.com/ghuser/libitemsflow/pkg/events"
	"github.com/ghuser/libitemsflow/services/lending/domain"
	domainevents "github.com/ghuser/libitemsflow/services/lending/domain/events"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. The bus is used to publish ItemCreatedEvents in the insert
// transaction; a nil bus disables publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Save persists a new Item and publishes an ItemCreatedEvent within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertItem(ctx, db.InsertItemParams{
			ID:        item.ID,
			Name:      item.Name.String(),
			Category:  item.Category,
			AssetTag:  item.AssetTag,
			Location:  item.Location,
			Note:      item.Note,
			Status:    string(item.Status),
			CreatedAt: item.CreatedAt,
		}); err != nil {
			if isUniqueViolation(err, "") {
				return fmt.Errorf("item %s already stored: %w", item.ID, err)
			}
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// List returns all items in insertion order.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

func (r *ItemRepository) publishCreated(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		Name:       item.Name.String(),
		Category:   item.Category,
		AssetTag:   item.AssetTag,
		OccurredAt: item.CreatedAt,
	}
	msg, err := events.NewMessage(event.EventID, event.Version, event)
	if err != nil {
		return err
	}
	return r.bus.PublishTx(ctx, tx, domainevents.TopicItemCreated, msg)
}
