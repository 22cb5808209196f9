package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// ValidateLoanForCreation checks the borrower and date rules of a new loan.
func ValidateLoanForCreation(loan *models.Loan) error {
	if loan == nil {
		return errors.New("loan cannot be nil")
	}
	if strings.TrimSpace(loan.Borrower.Name) == "" {
		return errors.New("borrower name is required")
	}
	if strings.TrimSpace(loan.Borrower.Contact) == "" {
		return errors.New("borrower contact is required")
	}
	if loan.LoanDate.IsZero() {
		return errors.New("loan date is required")
	}
	if loan.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	if loan.DueDate.Before(loan.LoanDate) {
		return fmt.Errorf("due date %s is before loan date %s", loan.DueDate, loan.LoanDate)
	}
	return nil
}

// ValidateReturnDate rejects a return recorded before the loan started.
func ValidateReturnDate(loan *models.Loan, returnDate models.Date) error {
	if returnDate.Before(loan.LoanDate) {
		return fmt.Errorf("return date %s is before loan date %s", returnDate, loan.LoanDate)
	}
	return nil
}
