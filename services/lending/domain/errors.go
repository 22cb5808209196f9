package domain

import (
	"errors"

	"github.com/ghuser/libitemsflow/pkg/envelope"
)

// Sentinel errors for the lending domain. Use errors.Is() to check these.
// Callers wrap them with detail, e.g. fmt.Errorf("%w: DueDate is before LoanDate", ErrValidation).
var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrLoanNotFound indicates the requested loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrItemUnavailable indicates the item already has an active loan.
	ErrItemUnavailable = errors.New("item is not available")

	// ErrLoanNotReturnable indicates the loan is unknown or no longer active.
	ErrLoanNotReturnable = errors.New("loan is not returnable")
)

// ErrorCode classifies err into one of the envelope codes. Errors that do not
// wrap a lending sentinel are envelope.CodeInternal.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return envelope.CodeValidation
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrLoanNotFound):
		return envelope.CodeNotFound
	case errors.Is(err, ErrItemUnavailable):
		return envelope.CodeItemUnavailable
	case errors.Is(err, ErrLoanNotReturnable):
		return envelope.CodeLoanNotReturnable
	default:
		return envelope.CodeInternal
	}
}
