package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/pkg/errhttp"
	"github.com/ghuser/libitemsflow/pkg/httpx"
	pkgvalidator "github.com/ghuser/libitemsflow/pkg/validator"
	appsvcs "github.com/ghuser/libitemsflow/services/lending/application/services"
	"github.com/ghuser/libitemsflow/services/lending/domain"
)

// CreateLoanHandler handles loan creation.
type CreateLoanHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewCreateLoanHandler returns a CreateLoanHandler backed by the given services.
func NewCreateLoanHandler(svc *appsvcs.Services, isProduction bool) *CreateLoanHandler {
	return &CreateLoanHandler{svc: svc, isProduction: isProduction}
}

// Execute lends an item.
//
//	@Summary		Create loan
//	@Description	Lends an AVAILABLE item. The response carries the stored status ACTIVE.
//	@Tags			loans
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateLoanRequest	true	"Loan creation request"
//	@Success		201		{object}	envelope.Envelope{data=LoanResponse}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"ITEM_UNAVAILABLE"
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/loans [post]
func (h *CreateLoanHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateLoanRequest](w, r)
	if !ok {
		return
	}

	loan, err := h.svc.Loans.CreateLoan(r.Context(), appsvcs.CreateLoanInput{
		ItemID:          req.ItemID,
		BorrowerName:    req.BorrowerName,
		BorrowerUnit:    req.BorrowerUnit,
		BorrowerContact: req.BorrowerContact,
		LoanDate:        req.LoanDate,
		DueDate:         req.DueDate,
		Note:            req.Note,
	})
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}

	httpx.OK(w, http.StatusCreated, toLoanResponse(loan))
}

// ListLoansHandler lists loans by effective status.
type ListLoansHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewListLoansHandler returns a ListLoansHandler backed by the given services.
func NewListLoansHandler(svc *appsvcs.Services, isProduction bool) *ListLoansHandler {
	return &ListLoansHandler{svc: svc, isProduction: isProduction}
}

// Execute lists loans in creation order.
//
//	@Summary		List loans
//	@Description	Status filters on the effective status: an ACTIVE loan past its due date is listed as OVERDUE only.
//	@Tags			loans
//	@Produce		json
//	@Param			status	query		string	false	"Effective status"	Enums(ACTIVE, RETURNED, OVERDUE)
//	@Param			item_id	query		string	false	"Item ID"			format(uuid)
//	@Success		200		{object}	envelope.Envelope{data=[]LoanResponse}
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/loans [get]
func (h *ListLoansHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loans, err := h.svc.Queries.ListLoans(r.Context(), appsvcs.ListLoansInput{
		Status: q.Get("status"),
		ItemID: q.Get("item_id"),
	})
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}
	httpx.OK(w, http.StatusOK, toLoanResponses(loans))
}

// GetLoanHandler fetches one loan.
type GetLoanHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewGetLoanHandler returns a GetLoanHandler backed by the given services.
func NewGetLoanHandler(svc *appsvcs.Services, isProduction bool) *GetLoanHandler {
	return &GetLoanHandler{svc: svc, isProduction: isProduction}
}

// Execute returns one loan with its effective status.
//
//	@Summary	Get loan
//	@Tags		loans
//	@Produce	json
//	@Param		loanID	path		string	true	"Loan ID"	format(uuid)
//	@Success	200		{object}	envelope.Envelope{data=LoanResponse}
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/loans/{loanID} [get]
func (h *GetLoanHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "loanID"))
	if err != nil {
		errhttp.WriteError(w, r, domain.ErrLoanNotFound, h.isProduction)
		return
	}

	loan, err := h.svc.Queries.GetLoan(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}
	httpx.OK(w, http.StatusOK, toLoanResponse(loan))
}
