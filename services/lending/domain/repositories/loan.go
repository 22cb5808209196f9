package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// LoanFilter narrows LoanRepository.List. Zero values match everything.
type LoanFilter struct {
	// StoredStatus must be ACTIVE, RETURNED or empty. OVERDUE is resolved
	// above the store.
	StoredStatus models.LoanStatus
	ItemID       uuid.UUID
}

// LoanRepository is the read side of loan persistence. Loans are only
// written through a Ledger unit of work.
type LoanRepository interface {
	// GetByID returns domain.ErrLoanNotFound when no loan has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error)

	// List returns matching loans in insertion order (ascending Seq).
	List(ctx context.Context, filter LoanFilter) ([]*models.Loan, error)
}
