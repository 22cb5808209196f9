package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/pkg/database"
	"github.com/ghuser/libitemsflow/services/lending/domain"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/postgres/db"
)

const (
	dialectPostgres = "postgres"
	schemaLending   = "lending"
	tableLoans      = "loans"
	colStatus       = "status"
	colItemID       = "item_id"
	colSeq          = "seq"
)

// LoanRepository implements repositories.LoanRepository against PostgreSQL.
type LoanRepository struct {
	db *database.Database
}

// NewLoanRepository returns a LoanRepository reading from the given pool.
func NewLoanRepository(database *database.Database) *LoanRepository {
	return &LoanRepository{db: database}
}

// GetByID retrieves a Loan by ID. Returns ErrLoanNotFound if not found.
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	row, err := db.New(r.db.DB()).GetLoan(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("query loan: %w", err)
	}
	return rowToLoan(row), nil
}

// List returns loans matching filter ordered by seq.
func (r *LoanRepository) List(ctx context.Context, filter repositories.LoanFilter) ([]*models.Loan, error) {
	query, args, err := buildListLoansQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build loan query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var loans []*models.Loan
	for rows.Next() {
		row, err := db.ScanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, rowToLoan(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

func buildListLoansQuery(filter repositories.LoanFilter) (string, []any, error) {
	where := goqu.Ex{}
	if filter.StoredStatus != "" {
		where[colStatus] = string(filter.StoredStatus)
	}
	if filter.ItemID != uuid.Nil {
		where[colItemID] = filter.ItemID.String()
	}

	stmt := goqu.Dialect(dialectPostgres).
		From(goqu.S(schemaLending).Table(tableLoans)).
		Prepared(true).
		Select(db.LoanColumns...).
		Order(goqu.I(colSeq).Asc())
	if len(where) > 0 {
		stmt = stmt.Where(where)
	}
	return stmt.ToSQL()
}
