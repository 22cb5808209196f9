package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	domainsvcs "github.com/ghuser/libitemsflow/services/lending/domain/services"
)

// ListLoansInput filters ListLoans. Status is matched against the effective
// status (ACTIVE, RETURNED or OVERDUE); empty fields match everything.
type ListLoansInput struct {
	Status string
	ItemID string
}

// QueryService is the read side of the ledger. Loan statuses it returns are
// resolved against today's calendar date; nothing it does writes.
type QueryService struct {
	items    *ItemRegistry
	loans    repositories.LoanRepository
	clock    clock.Clock
	location *time.Location
}

// NewQueryService returns a QueryService. A nil loc means UTC.
func NewQueryService(items *ItemRegistry, loans repositories.LoanRepository, clk clock.Clock, loc *time.Location) *QueryService {
	return &QueryService{items: items, loans: loans, clock: clk, location: loc}
}

// Today is the calendar date overdue classification runs against.
func (s *QueryService) Today() models.Date {
	return models.Today(s.clock.Now(), s.location)
}

// ListLoans returns loans in insertion order with their effective status,
// keeping only those whose effective status matches in.Status.
func (s *QueryService) ListLoans(ctx context.Context, in ListLoansInput) ([]*models.Loan, error) {
	var (
		want   models.LoanStatus
		filter repositories.LoanFilter
	)
	if raw := strings.ToUpper(strings.TrimSpace(in.Status)); raw != "" {
		st, ok := models.ParseLoanStatus(raw)
		if !ok {
			return nil, fmt.Errorf("%w: status must be one of ACTIVE, RETURNED, OVERDUE", domain.ErrValidation)
		}
		want = st
		// OVERDUE loans are stored ACTIVE.
		filter.StoredStatus = models.LoanActive
		if st == models.LoanReturned {
			filter.StoredStatus = models.LoanReturned
		}
	}
	if raw := strings.TrimSpace(in.ItemID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			// No stored loan can reference a non-UUID item.
			return []*models.Loan{}, nil
		}
		filter.ItemID = id
	}

	stored, err := s.loans.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	today := s.Today()
	result := make([]*models.Loan, 0, len(stored))
	for _, loan := range stored {
		resolved := domainsvcs.ResolveLoan(loan, today)
		if want != "" && resolved.Status != want {
			continue
		}
		result = append(result, resolved)
	}
	return result, nil
}

// GetLoan returns one loan with its effective status.
func (s *QueryService) GetLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return domainsvcs.ResolveLoan(loan, s.Today()), nil
}

// ListItems returns every item with its current availability.
func (s *QueryService) ListItems(ctx context.Context) ([]*models.Item, error) {
	return s.items.List(ctx)
}
