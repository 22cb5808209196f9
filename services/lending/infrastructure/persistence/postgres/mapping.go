package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/postgres/db"
)

const (
	pgUniqueViolation = "23505"

	// Partial unique index on loans(item_id) WHERE status = 'ACTIVE'.
	constraintOneActiveLoan = "loans_one_active_per_item"
)

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func rowToItem(row db.LendingItem) *models.Item {
	return &models.Item{
		ID:        row.ID,
		Name:      models.ItemName(row.Name),
		Category:  row.Category,
		AssetTag:  row.AssetTag,
		Location:  row.Location,
		Note:      row.Note,
		Status:    models.ItemStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}
}

func rowToLoan(row db.LendingLoan) *models.Loan {
	return &models.Loan{
		ID:     row.ID,
		Seq:    row.Seq,
		ItemID: row.ItemID,
		Borrower: models.Borrower{
			Name:    row.BorrowerName,
			Unit:    row.BorrowerUnit,
			Contact: row.BorrowerContact,
		},
		LoanDate:   row.LoanDate,
		DueDate:    row.DueDate,
		ReturnDate: row.ReturnDate,
		Note:       row.Note,
		ReturnNote: row.ReturnNote,
		Status:     models.LoanStatus(row.Status),
		CreatedAt:  row.CreatedAt,
	}
}
