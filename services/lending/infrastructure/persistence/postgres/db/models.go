package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// LendingItem is a row of lending.items.
type LendingItem struct {
	ID        uuid.UUID
	Seq       int64
	Name      string
	Category  string
	AssetTag  string
	Location  string
	Note      string
	Status    string
	CreatedAt time.Time
}

// LendingLoan is a row of lending.loans. DATE columns map to models.Date,
// with a zero ReturnDate standing for NULL.
type LendingLoan struct {
	ID              uuid.UUID
	Seq             int64
	ItemID          uuid.UUID
	BorrowerName    string
	BorrowerUnit    string
	BorrowerContact string
	LoanDate        models.Date
	DueDate         models.Date
	ReturnDate      models.Date
	Note            string
	ReturnNote      string
	Status          string
	CreatedAt       time.Time
}
