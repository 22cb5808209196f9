package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/pkg/logger"
	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	domainsvcs "github.com/ghuser/libitemsflow/services/lending/domain/services"
)

// CreateLoanInput carries the fields of a new loan as received. Dates are
// YYYY-MM-DD.
type CreateLoanInput struct {
	ItemID          string
	BorrowerName    string
	BorrowerUnit    string
	BorrowerContact string
	LoanDate        string
	DueDate         string
	Note            string
}

// ReturnLoanInput identifies the loan being closed. An empty ReturnDate
// means today.
type ReturnLoanInput struct {
	LoanID     string
	ReturnDate string
	Note       string
}

// LoanLedger owns the loan lifecycle. Every write runs inside a per-item
// Ledger unit of work, so the loan row and the item availability change
// together or not at all.
type LoanLedger struct {
	ledger   repositories.Ledger
	loans    repositories.LoanRepository
	items    *ItemRegistry
	clock    clock.Clock
	location *time.Location
	log      logger.Logger
	metrics  *metrics
}

// NewLoanLedger returns a LoanLedger. A nil loc means UTC.
func NewLoanLedger(
	ledger repositories.Ledger,
	loans repositories.LoanRepository,
	items *ItemRegistry,
	clk clock.Clock,
	loc *time.Location,
	log logger.Logger,
) *LoanLedger {
	return &LoanLedger{
		ledger:   ledger,
		loans:    loans,
		items:    items,
		clock:    clk,
		location: loc,
		log:      log,
		metrics:  newMetrics(),
	}
}

// CreateLoan lends an AVAILABLE item. The returned loan carries its stored
// status ACTIVE even when the due date has already passed.
func (s *LoanLedger) CreateLoan(ctx context.Context, in CreateLoanInput) (_ *models.Loan, err error) {
	ctx, span := tracer.Start(ctx, "LoanLedger.CreateLoan")
	defer func() {
		s.metrics.recordError(ctx, "create_loan", err)
		endSpan(span, err)
	}()

	itemID, known, err := parseID("ItemID", in.ItemID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("lending.item_id", strings.TrimSpace(in.ItemID)))

	loanDate, err := parseDate("LoanDate", in.LoanDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("DueDate", in.DueDate)
	if err != nil {
		return nil, err
	}

	loan := models.NewLoan(itemID, models.Borrower{
		Name:    strings.TrimSpace(in.BorrowerName),
		Unit:    strings.TrimSpace(in.BorrowerUnit),
		Contact: strings.TrimSpace(in.BorrowerContact),
	}, loanDate, dueDate, in.Note, s.clock.Now())

	if err := domainsvcs.ValidateLoanForCreation(loan); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if !known {
		return nil, fmt.Errorf("%w: item %q does not exist", domain.ErrItemNotFound, strings.TrimSpace(in.ItemID))
	}

	err = s.ledger.WithItemLock(ctx, itemID, func(ctx context.Context, lock repositories.ItemLock) error {
		if !lock.Item().Available() {
			return fmt.Errorf("%w: item %s is on loan", domain.ErrItemUnavailable, itemID)
		}
		if err := lock.InsertLoan(ctx, loan); err != nil {
			return err
		}
		return lock.SetItemStatus(ctx, models.ItemOnLoan)
	})
	if err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}

	s.items.invalidate(ctx, itemID)
	inc(ctx, s.metrics.loansCreated)
	s.log.InfoContext(ctx, "loan created",
		"loan_id", loan.ID,
		"item_id", itemID,
		"due_date", loan.DueDate.String(),
	)
	return loan, nil
}

// ReturnLoan closes an ACTIVE loan and makes its item AVAILABLE again.
// Unknown loans and loans already returned fail with ErrLoanNotReturnable.
func (s *LoanLedger) ReturnLoan(ctx context.Context, in ReturnLoanInput) (_ *models.Loan, err error) {
	ctx, span := tracer.Start(ctx, "LoanLedger.ReturnLoan")
	defer func() {
		s.metrics.recordError(ctx, "return_loan", err)
		endSpan(span, err)
	}()

	loanID, known, err := parseID("LoanID", in.LoanID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("lending.loan_id", strings.TrimSpace(in.LoanID)))

	returnDate := models.Today(s.clock.Now(), s.location)
	if strings.TrimSpace(in.ReturnDate) != "" {
		if returnDate, err = parseDate("ReturnDate", in.ReturnDate); err != nil {
			return nil, err
		}
	}

	if !known {
		return nil, fmt.Errorf("%w: loan %q does not exist", domain.ErrLoanNotReturnable, strings.TrimSpace(in.LoanID))
	}

	// ItemID never changes, so it is safe to read before taking the lock.
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return nil, fmt.Errorf("%w: loan %s does not exist", domain.ErrLoanNotReturnable, loanID)
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}

	var returned *models.Loan
	err = s.ledger.WithItemLock(ctx, loan.ItemID, func(ctx context.Context, lock repositories.ItemLock) error {
		current, err := lock.GetLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if !current.Active() {
			return fmt.Errorf("%w: loan %s is %s", domain.ErrLoanNotReturnable, loanID, current.Status)
		}
		if err := domainsvcs.ValidateReturnDate(current, returnDate); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		current.MarkReturned(returnDate, in.Note)
		if err := lock.MarkReturned(ctx, current); err != nil {
			return err
		}
		if err := lock.SetItemStatus(ctx, models.ItemAvailable); err != nil {
			return err
		}
		returned = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("return loan: %w", err)
	}

	s.items.invalidate(ctx, loan.ItemID)
	inc(ctx, s.metrics.loansReturned)
	s.log.InfoContext(ctx, "loan returned",
		"loan_id", loanID,
		"item_id", loan.ItemID,
		"return_date", returnDate.String(),
	)
	return returned, nil
}

// parseID rejects a missing identifier. An identifier that is present but
// not a UUID is reported with known=false: it cannot name a stored record,
// so callers answer it the same way as an unknown UUID.
func parseID(field, s string) (id uuid.UUID, known bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, false, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	id, err = uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func parseDate(field, s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", domain.ErrValidation, field)
	}
	return d, nil
}
