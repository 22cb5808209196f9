package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// LoanColumns lists lending.loans columns in ScanLoan order.
var LoanColumns = []any{
	"id", "seq", "item_id", "borrower_name", "borrower_unit", "borrower_contact",
	"loan_date", "due_date", "return_date", "note", "return_note", "status", "created_at",
}

const loanColumns = `id, seq, item_id, borrower_name, borrower_unit, borrower_contact,
	loan_date, due_date, return_date, note, return_note, status, created_at`

// ScanLoan reads one row selected with LoanColumns.
func ScanLoan(s Scanner) (LendingLoan, error) {
	var l LendingLoan
	err := s.Scan(
		&l.ID,
		&l.Seq,
		&l.ItemID,
		&l.BorrowerName,
		&l.BorrowerUnit,
		&l.BorrowerContact,
		&l.LoanDate,
		&l.DueDate,
		&l.ReturnDate,
		&l.Note,
		&l.ReturnNote,
		&l.Status,
		&l.CreatedAt,
	)
	return l, err
}

var getLoan = `SELECT ` + loanColumns + ` FROM lending.loans WHERE id = $1`

func (q *Queries) GetLoan(ctx context.Context, id uuid.UUID) (LendingLoan, error) {
	return ScanLoan(q.db.QueryRowContext(ctx, getLoan, id))
}

const insertLoan = `
INSERT INTO lending.loans (
    id, item_id, borrower_name, borrower_unit, borrower_contact,
    loan_date, due_date, note, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, 'ACTIVE', $9)
RETURNING seq`

type InsertLoanParams struct {
	ID              uuid.UUID
	ItemID          uuid.UUID
	BorrowerName    string
	BorrowerUnit    string
	BorrowerContact string
	LoanDate        models.Date
	DueDate         models.Date
	Note            string
	CreatedAt       time.Time
}

// InsertLoan stores an ACTIVE loan and returns its sequence number.
func (q *Queries) InsertLoan(ctx context.Context, arg InsertLoanParams) (int64, error) {
	var seq int64
	err := q.db.QueryRowContext(ctx, insertLoan,
		arg.ID,
		arg.ItemID,
		arg.BorrowerName,
		arg.BorrowerUnit,
		arg.BorrowerContact,
		arg.LoanDate,
		arg.DueDate,
		arg.Note,
		arg.CreatedAt,
	).Scan(&seq)
	return seq, err
}

const markLoanReturned = `
UPDATE lending.loans
SET status = 'RETURNED', return_date = $2::date, return_note = $3
WHERE id = $1 AND status = 'ACTIVE'`

type MarkLoanReturnedParams struct {
	ID         uuid.UUID
	ReturnDate models.Date
	ReturnNote string
}

// MarkLoanReturned flips an ACTIVE loan to RETURNED and reports how many
// rows changed (0 when the loan is missing or already returned).
func (q *Queries) MarkLoanReturned(ctx context.Context, arg MarkLoanReturnedParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, markLoanReturned, arg.ID, arg.ReturnDate, arg.ReturnNote)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
