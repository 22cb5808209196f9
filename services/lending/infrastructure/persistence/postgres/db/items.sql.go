package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const itemColumns = `id, seq, name, category, asset_tag, location, note, status, created_at`

// ScanItem reads one row selected with itemColumns.
func ScanItem(s Scanner) (LendingItem, error) {
	var i LendingItem
	err := s.Scan(
		&i.ID,
		&i.Seq,
		&i.Name,
		&i.Category,
		&i.AssetTag,
		&i.Location,
		&i.Note,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const insertItem = `
INSERT INTO lending.items (id, name, category, asset_tag, location, note, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type InsertItemParams struct {
	ID        uuid.UUID
	Name      string
	Category  string
	AssetTag  string
	Location  string
	Note      string
	Status    string
	CreatedAt time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.ExecContext(ctx, insertItem,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.AssetTag,
		arg.Location,
		arg.Note,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

var getItem = `SELECT ` + itemColumns + ` FROM lending.items WHERE id = $1`

func (q *Queries) GetItem(ctx context.Context, id uuid.UUID) (LendingItem, error) {
	return ScanItem(q.db.QueryRowContext(ctx, getItem, id))
}

// getItemForUpdate holds a row lock on the item until the transaction ends.
// Every loan write on the item goes through it first.
var getItemForUpdate = `SELECT ` + itemColumns + ` FROM lending.items WHERE id = $1 FOR UPDATE`

func (q *Queries) GetItemForUpdate(ctx context.Context, id uuid.UUID) (LendingItem, error) {
	return ScanItem(q.db.QueryRowContext(ctx, getItemForUpdate, id))
}

var listItems = `SELECT ` + itemColumns + ` FROM lending.items ORDER BY seq`

func (q *Queries) ListItems(ctx context.Context) ([]LendingItem, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var items []LendingItem
	for rows.Next() {
		i, err := ScanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateItemStatus = `UPDATE lending.items SET status = $2 WHERE id = $1`

func (q *Queries) UpdateItemStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := q.db.ExecContext(ctx, updateItemStatus, id, status)
	return err
}
