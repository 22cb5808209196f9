package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
)

// LoanRepository implements repositories.LoanRepository on a Store.
type LoanRepository struct {
	store *Store
}

// NewLoanRepository returns a LoanRepository reading store.
func NewLoanRepository(store *Store) *LoanRepository {
	return &LoanRepository{store: store}
}

// GetByID returns a copy of the loan or domain.ErrLoanNotFound.
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	loan, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	return loan.Clone(), nil
}

// List returns copies of matching loans ordered by Seq.
func (r *LoanRepository) List(ctx context.Context, filter repositories.LoanFilter) ([]*models.Loan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	out := make([]*models.Loan, 0, len(s.loans))
	for _, loan := range s.loans {
		if filter.StoredStatus != "" && loan.Status != filter.StoredStatus {
			continue
		}
		if filter.ItemID != uuid.Nil && loan.ItemID != filter.ItemID {
			continue
		}
		out = append(out, loan.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Loan) int { return cmp.Compare(a.Seq, b.Seq) })
	return out, nil
}
