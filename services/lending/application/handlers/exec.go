package handlers

import (
	"net/http"

	"github.com/ghuser/libitemsflow/pkg/envelope"
	"github.com/ghuser/libitemsflow/pkg/httpx"
	appsvcs "github.com/ghuser/libitemsflow/services/lending/application/services"
)

// Actions understood by the ExecHandler.
const (
	ActionHealth  = "health"
	ActionItems   = "items"
	ActionLoans   = "loans"
	ActionReturns = "returns"
)

// ExecHandler serves the single-endpoint form of the API, where the
// operation is picked by the action query parameter, e.g.
// GET /exec?action=loans&status=OVERDUE or POST /exec?action=returns.
type ExecHandler struct {
	routes map[string]map[string]http.HandlerFunc
}

// NewExecHandler returns an ExecHandler dispatching to the REST handlers.
func NewExecHandler(svc *appsvcs.Services, health http.HandlerFunc, isProduction bool) *ExecHandler {
	return &ExecHandler{routes: map[string]map[string]http.HandlerFunc{
		ActionHealth: {
			http.MethodGet: health,
		},
		ActionItems: {
			http.MethodGet:  NewListItemsHandler(svc, isProduction).Execute,
			http.MethodPost: NewCreateItemHandler(svc, isProduction).Execute,
		},
		ActionLoans: {
			http.MethodGet:  NewListLoansHandler(svc, isProduction).Execute,
			http.MethodPost: NewCreateLoanHandler(svc, isProduction).Execute,
		},
		ActionReturns: {
			http.MethodPost: NewReturnLoanHandler(svc, isProduction).Execute,
		},
	}}
}

// Execute dispatches on ?action=.
//
//	@Summary		Action dispatch
//	@Description	Single-endpoint form of the API. GET health|items|loans, POST items|loans|returns.
//	@Tags			exec
//	@Accept			json
//	@Produce		json
//	@Param			action	query		string	true	"Operation"	Enums(health, items, loans, returns)
//	@Param			status	query		string	false	"Loan status filter (action=loans)"
//	@Success		200		{object}	envelope.Envelope
//	@Failure		400		{object}	ErrorResponse
//	@Failure		405		{object}	ErrorResponse
//	@Router			/exec [get]
//	@Router			/exec [post]
func (h *ExecHandler) Execute(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == "" {
		httpx.Fail(w, http.StatusBadRequest, envelope.CodeValidation, "action is required")
		return
	}
	methods, ok := h.routes[action]
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, envelope.CodeValidation, "unknown action "+action)
		return
	}
	next, ok := methods[r.Method]
	if !ok {
		httpx.Fail(w, http.StatusMethodNotAllowed, envelope.CodeValidation,
			"method "+r.Method+" not allowed for action "+action)
		return
	}
	next(w, r)
}
