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
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/postgres/db"
)

// Ledger implements repositories.Ledger with one transaction per unit of
// work. The item row is locked with SELECT ... FOR UPDATE so concurrent
// writers on the same item queue behind each other; the partial unique
// index on active loans backs that up at the storage level.
type Ledger struct {
	db  *database.Database
	bus *events.EventBus
}

// NewLedger returns a Ledger over the given pool. Loan events are published
// through bus inside the write transaction; a nil bus disables publishing.
func NewLedger(database *database.Database, bus *events.EventBus) *Ledger {
	return &Ledger{db: database, bus: bus}
}

// WithItemLock implements repositories.Ledger.
func (l *Ledger) WithItemLock(ctx context.Context, itemID uuid.UUID, fn func(ctx context.Context, lock repositories.ItemLock) error) error {
	return l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetItemForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}
		return fn(ctx, &itemLock{
			tx:   tx,
			q:    q,
			bus:  l.bus,
			item: rowToItem(row),
		})
	})
}

type itemLock struct {
	tx   *sql.Tx
	q    *db.Queries
	bus  *events.EventBus
	item *models.Item
}

func (u *itemLock) Item() *models.Item {
	return u.item.Clone()
}

func (u *itemLock) GetLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	row, err := u.q.GetLoan(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("query loan: %w", err)
	}
	return rowToLoan(row), nil
}

func (u *itemLock) InsertLoan(ctx context.Context, loan *models.Loan) error {
	if loan.ItemID != u.item.ID {
		return fmt.Errorf("loan %s is for item %s, lock holds %s", loan.ID, loan.ItemID, u.item.ID)
	}
	seq, err := u.q.InsertLoan(ctx, db.InsertLoanParams{
		ID:              loan.ID,
		ItemID:          loan.ItemID,
		BorrowerName:    loan.Borrower.Name,
		BorrowerUnit:    loan.Borrower.Unit,
		BorrowerContact: loan.Borrower.Contact,
		LoanDate:        loan.LoanDate,
		DueDate:         loan.DueDate,
		Note:            loan.Note,
		CreatedAt:       loan.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err, constraintOneActiveLoan) {
			return fmt.Errorf("%w: item %s already has an active loan", domain.ErrItemUnavailable, u.item.ID)
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	loan.Seq = seq

	if u.bus == nil {
		return nil
	}
	event := domainevents.LoanCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		LoanID:     loan.ID,
		ItemID:     loan.ItemID,
		LoanDate:   loan.LoanDate.String(),
		DueDate:    loan.DueDate.String(),
		OccurredAt: loan.CreatedAt,
	}
	if err := u.publish(ctx, domainevents.TopicLoanCreated, event.EventID, event.Version, event); err != nil {
		return fmt.Errorf("publish loan created: %w", err)
	}
	return nil
}

func (u *itemLock) MarkReturned(ctx context.Context, loan *models.Loan) error {
	if loan.ItemID != u.item.ID {
		return fmt.Errorf("loan %s is for item %s, lock holds %s", loan.ID, loan.ItemID, u.item.ID)
	}
	if loan.Status != models.LoanReturned || loan.ReturnDate.IsZero() {
		return fmt.Errorf("loan %s must be RETURNED with a return date", loan.ID)
	}
	n, err := u.q.MarkLoanReturned(ctx, db.MarkLoanReturnedParams{
		ID:         loan.ID,
		ReturnDate: loan.ReturnDate,
		ReturnNote: loan.ReturnNote,
	})
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: loan %s is not active", domain.ErrLoanNotReturnable, loan.ID)
	}

	if u.bus == nil {
		return nil
	}
	event := domainevents.LoanReturnedEvent{
		EventID:    uuid.New(),
		Version:    1,
		LoanID:     loan.ID,
		ItemID:     loan.ItemID,
		ReturnDate: loan.ReturnDate.String(),
		OccurredAt: loan.ReturnDate.Time(),
	}
	if err := u.publish(ctx, domainevents.TopicLoanReturned, event.EventID, event.Version, event); err != nil {
		return fmt.Errorf("publish loan returned: %w", err)
	}
	return nil
}

func (u *itemLock) SetItemStatus(ctx context.Context, status models.ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown item status %q", status)
	}
	if err := u.q.UpdateItemStatus(ctx, u.item.ID, string(status)); err != nil {
		return fmt.Errorf("update item status: %w", err)
	}
	u.item.Status = status
	return nil
}

func (u *itemLock) publish(ctx context.Context, topic string, eventID uuid.UUID, version int, payload any) error {
	msg, err := events.NewMessage(eventID, version, payload)
	if err != nil {
		return err
	}
	return u.bus.PublishTx(ctx, u.tx, topic, msg)
}
