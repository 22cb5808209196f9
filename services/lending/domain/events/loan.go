package events

import (
	"time"

	"github.com/google/uuid"
)

// Loan lifecycle topics. Both change the availability of ItemID, so
// consumers holding item read models should refresh it.
const (
	TopicLoanCreated  = "loan.created"
	TopicLoanReturned = "loan.returned"
)

// LoanCreatedEvent is published in the same transaction that marks the item ON_LOAN.
type LoanCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	LoanID     uuid.UUID `json:"loan_id"`
	ItemID     uuid.UUID `json:"item_id"`
	LoanDate   string    `json:"loan_date"`
	DueDate    string    `json:"due_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LoanReturnedEvent is published in the same transaction that marks the item AVAILABLE.
type LoanReturnedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	LoanID     uuid.UUID `json:"loan_id"`
	ItemID     uuid.UUID `json:"item_id"`
	ReturnDate string    `json:"return_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemRef is the subset every lending event shares. Consumers that only
// need to know which item changed decode into it.
type ItemRef struct {
	EventID uuid.UUID `json:"event_id"`
	ItemID  uuid.UUID `json:"item_id"`
}
