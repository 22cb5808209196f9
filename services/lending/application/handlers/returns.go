package handlers

import (
	"net/http"

	"github.com/ghuser/libitemsflow/pkg/errhttp"
	"github.com/ghuser/libitemsflow/pkg/httpx"
	pkgvalidator "github.com/ghuser/libitemsflow/pkg/validator"
	appsvcs "github.com/ghuser/libitemsflow/services/lending/application/services"
)

// ReturnLoanHandler handles loan returns.
type ReturnLoanHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewReturnLoanHandler returns a ReturnLoanHandler backed by the given services.
func NewReturnLoanHandler(svc *appsvcs.Services, isProduction bool) *ReturnLoanHandler {
	return &ReturnLoanHandler{svc: svc, isProduction: isProduction}
}

// Execute returns an ACTIVE loan.
//
//	@Summary		Return loan
//	@Description	Closes an ACTIVE loan and makes the item AVAILABLE. Note is stored as the loan's ReturnNote.
//	@Tags			loans
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ReturnLoanRequest	true	"Return request"
//	@Success		200		{object}	envelope.Envelope{data=LoanResponse}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"LOAN_NOT_RETURNABLE"
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/returns [post]
func (h *ReturnLoanHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ReturnLoanRequest](w, r)
	if !ok {
		return
	}

	loan, err := h.svc.Loans.ReturnLoan(r.Context(), appsvcs.ReturnLoanInput{
		LoanID:     req.LoanID,
		ReturnDate: req.ReturnDate,
		Note:       req.Note,
	})
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}

	httpx.OK(w, http.StatusOK, toLoanResponse(loan))
}
