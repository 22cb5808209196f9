package models

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus is either a stored loan status (ACTIVE, RETURNED) or the
// read-time OVERDUE label. OVERDUE is never persisted.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	LoanOverdue  LoanStatus = "OVERDUE"
)

// ParseLoanStatus accepts the three values a status filter may take.
func ParseLoanStatus(s string) (LoanStatus, bool) {
	switch st := LoanStatus(s); st {
	case LoanActive, LoanReturned, LoanOverdue:
		return st, true
	default:
		return "", false
	}
}

// Stored reports whether s may appear in storage.
func (s LoanStatus) Stored() bool {
	return s == LoanActive || s == LoanReturned
}

// Borrower identifies who holds the item.
type Borrower struct {
	Name    string
	Unit    string
	Contact string
}

// Loan records one lending of an Item. LoanDate and DueDate never change;
// ReturnDate is set exactly when Status is RETURNED.
type Loan struct {
	ID         uuid.UUID
	Seq        int64
	ItemID     uuid.UUID
	Borrower   Borrower
	LoanDate   Date
	DueDate    Date
	ReturnDate Date
	Note       string
	ReturnNote string
	Status     LoanStatus
	CreatedAt  time.Time
}

// NewLoan constructs an ACTIVE Loan with a generated ID. Seq is assigned by
// the store on insert.
func NewLoan(itemID uuid.UUID, borrower Borrower, loanDate, dueDate Date, note string, now time.Time) *Loan {
	return &Loan{
		ID:        uuid.New(),
		ItemID:    itemID,
		Borrower:  borrower,
		LoanDate:  loanDate,
		DueDate:   dueDate,
		Note:      note,
		Status:    LoanActive,
		CreatedAt: now.UTC(),
	}
}

// Active reports whether the loan is stored ACTIVE.
func (l *Loan) Active() bool {
	return l.Status == LoanActive
}

// MarkReturned moves an ACTIVE loan to RETURNED. It reports false and leaves
// the loan untouched when the loan is not ACTIVE.
func (l *Loan) MarkReturned(on Date, note string) bool {
	if !l.Active() {
		return false
	}
	l.Status = LoanReturned
	l.ReturnDate = on
	l.ReturnNote = note
	return true
}

// Clone returns a copy safe to hand across a store boundary.
func (l *Loan) Clone() *Loan {
	c := *l
	return &c
}
