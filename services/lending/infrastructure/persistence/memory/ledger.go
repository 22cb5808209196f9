package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
)

// Ledger implements repositories.Ledger with one mutex per item. Writes made
// through the ItemLock are buffered and applied under the store lock only
// when the callback succeeds.
type Ledger struct {
	store *Store
}

// NewLedger returns a Ledger over store.
func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store}
}

// WithItemLock implements repositories.Ledger.
func (l *Ledger) WithItemLock(ctx context.Context, itemID uuid.UUID, fn func(ctx context.Context, lock repositories.ItemLock) error) error {
	s := l.store

	s.mu.RLock()
	_, ok := s.items[itemID]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrItemNotFound
	}

	m := s.itemMutex(itemID)
	m.Lock()
	defer m.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	item := s.items[itemID].Clone()
	s.mu.RUnlock()

	uow := &itemLock{
		store:   s,
		item:    item,
		pending: make(map[uuid.UUID]*models.Loan),
	}
	if err := fn(ctx, uow); err != nil {
		return err
	}
	uow.commit()
	return nil
}

type itemLock struct {
	store *Store
	item  *models.Item
	// pending holds loans inserted or updated in this unit of work.
	pending      map[uuid.UUID]*models.Loan
	statusChange bool
}

func (u *itemLock) Item() *models.Item {
	return u.item.Clone()
}

func (u *itemLock) GetLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if loan, ok := u.pending[id]; ok {
		return loan.Clone(), nil
	}
	s := u.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	loan, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	return loan.Clone(), nil
}

// activeLoan returns the item's ACTIVE loan as seen by this unit of work.
func (u *itemLock) activeLoan() (uuid.UUID, bool) {
	for _, loan := range u.pending {
		if loan.Active() {
			return loan.ID, true
		}
	}
	s := u.store
	s.mu.RLock()
	id, ok := s.activeByItem[u.item.ID]
	s.mu.RUnlock()
	if ok {
		if p, staged := u.pending[id]; staged && !p.Active() {
			return uuid.Nil, false
		}
	}
	return id, ok
}

func (u *itemLock) InsertLoan(ctx context.Context, loan *models.Loan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if loan.ItemID != u.item.ID {
		return fmt.Errorf("loan %s is for item %s, lock holds %s", loan.ID, loan.ItemID, u.item.ID)
	}
	if loan.Active() {
		if _, busy := u.activeLoan(); busy {
			return fmt.Errorf("%w: item %s already has an active loan", domain.ErrItemUnavailable, u.item.ID)
		}
	}
	loan.Seq = u.store.nextSeq()
	u.pending[loan.ID] = loan.Clone()
	return nil
}

func (u *itemLock) MarkReturned(ctx context.Context, loan *models.Loan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if loan.ItemID != u.item.ID {
		return fmt.Errorf("loan %s is for item %s, lock holds %s", loan.ID, loan.ItemID, u.item.ID)
	}
	current, err := u.GetLoan(ctx, loan.ID)
	if err != nil {
		return err
	}
	if !current.Active() {
		return fmt.Errorf("%w: loan %s is %s", domain.ErrLoanNotReturnable, loan.ID, current.Status)
	}
	if loan.Status != models.LoanReturned || loan.ReturnDate.IsZero() {
		return fmt.Errorf("loan %s must be RETURNED with a return date", loan.ID)
	}
	u.pending[loan.ID] = loan.Clone()
	return nil
}

func (u *itemLock) SetItemStatus(ctx context.Context, status models.ItemStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("unknown item status %q", status)
	}
	u.item.Status = status
	u.statusChange = true
	return nil
}

func (u *itemLock) commit() {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, loan := range u.pending {
		s.loans[id] = loan
		switch {
		case loan.Active():
			s.activeByItem[loan.ItemID] = id
		case s.activeByItem[loan.ItemID] == id:
			delete(s.activeByItem, loan.ItemID)
		}
	}
	if u.statusChange {
		s.items[u.item.ID].Status = u.item.Status
	}
}
