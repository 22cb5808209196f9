package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// ItemLock is the write surface available while one item is held
// exclusively. It is only valid inside the callback passed to
// Ledger.WithItemLock.
type ItemLock interface {
	// Item returns the locked item as currently stored, including writes
	// made earlier in the same unit of work.
	Item() *models.Item

	// GetLoan reads a loan, seeing writes made earlier in the same unit of work.
	GetLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error)

	// InsertLoan stores a new loan for the locked item and assigns its Seq.
	InsertLoan(ctx context.Context, loan *models.Loan) error

	// MarkReturned persists the RETURNED transition of a loan on the locked item.
	MarkReturned(ctx context.Context, loan *models.Loan) error

	// SetItemStatus flips the availability of the locked item.
	SetItemStatus(ctx context.Context, status models.ItemStatus) error
}

// Ledger serializes all loan writes per item. WithItemLock runs fn while
// holding an exclusive lock on itemID; everything fn writes through the
// ItemLock commits together if fn returns nil and is discarded otherwise.
// Calls for different items do not block each other.
//
// WithItemLock returns domain.ErrItemNotFound when the item does not exist.
type Ledger interface {
	WithItemLock(ctx context.Context, itemID uuid.UUID, fn func(ctx context.Context, lock ItemLock) error) error
}
