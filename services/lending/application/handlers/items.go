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

// CreateItemHandler handles item creation.
type CreateItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewCreateItemHandler returns a CreateItemHandler backed by the given services.
func NewCreateItemHandler(svc *appsvcs.Services, isProduction bool) *CreateItemHandler {
	return &CreateItemHandler{svc: svc, isProduction: isProduction}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Registers a lendable item. New items are always AVAILABLE.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	envelope.Envelope{data=ItemResponse}
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/items [post]
func (h *CreateItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.Create(r.Context(), appsvcs.CreateItemInput{
		Name:     req.Name,
		Category: req.Category,
		AssetTag: req.AssetTag,
		Location: req.Location,
		Note:     req.Note,
		Status:   req.Status,
	})
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}

	httpx.OK(w, http.StatusCreated, toItemResponse(item))
}

// ListItemsHandler lists items.
type ListItemsHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, isProduction bool) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, isProduction: isProduction}
}

// Execute lists every item with its current availability.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	envelope.Envelope{data=[]ItemResponse}
//	@Router		/api/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Queries.ListItems(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}
	httpx.OK(w, http.StatusOK, toItemResponses(items))
}

// GetItemHandler fetches one item.
type GetItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services, isProduction bool) *GetItemHandler {
	return &GetItemHandler{svc: svc, isProduction: isProduction}
}

// Execute returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		itemID	path		string	true	"Item ID"	format(uuid)
//	@Success	200		{object}	envelope.Envelope{data=ItemResponse}
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/items/{itemID} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		errhttp.WriteError(w, r, domain.ErrItemNotFound, h.isProduction)
		return
	}

	item, err := h.svc.Items.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err, h.isProduction)
		return
	}
	httpx.OK(w, http.StatusOK, toItemResponse(item))
}
