package services

import "github.com/ghuser/libitemsflow/services/lending/domain/models"

// ResolveStatus computes the effective status of a loan on the given day:
// RETURNED stays RETURNED, an unreturned loan whose due date is strictly
// before today is OVERDUE, anything else is ACTIVE. A loan due today is
// still ACTIVE.
func ResolveStatus(stored models.LoanStatus, due, today models.Date) models.LoanStatus {
	if stored == models.LoanReturned {
		return models.LoanReturned
	}
	if due.Before(today) {
		return models.LoanOverdue
	}
	return models.LoanActive
}

// ResolveLoan returns a copy of loan carrying its effective status. The
// argument is not modified.
func ResolveLoan(loan *models.Loan, today models.Date) *models.Loan {
	resolved := loan.Clone()
	resolved.Status = ResolveStatus(loan.Status, loan.DueDate, today)
	return resolved
}
