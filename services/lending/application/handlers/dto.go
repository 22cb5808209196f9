package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/pkg/envelope"
	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// CreateItemRequest is the request body for creating an item. Status may be
// omitted; when present it must be AVAILABLE.
type CreateItemRequest struct {
	Name     string `json:"Name"     validate:"required,max=255"             example:"Dell Latitude 7440"`
	Category string `json:"Category" validate:"required,max=100"             example:"Laptop"`
	AssetTag string `json:"AssetTag" validate:"required,max=100"             example:"LAP-0042"`
	Location string `json:"Location" validate:"max=255"                      example:"IT storage room"`
	Note     string `json:"Note"     validate:"max=2000"                     example:"Charger included"`
	Status   string `json:"Status"   validate:"omitempty,oneof=AVAILABLE"    example:"AVAILABLE"`
} // @name CreateItemRequest

// CreateLoanRequest is the request body for lending an item.
type CreateLoanRequest struct {
	ItemID          string `json:"ItemID"          validate:"required,max=255"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	BorrowerName    string `json:"BorrowerName"    validate:"required,max=255"                 example:"Bruno Costa"`
	BorrowerUnit    string `json:"BorrowerUnit"    validate:"max=255"                          example:"Finance"`
	BorrowerContact string `json:"BorrowerContact" validate:"required,max=255"                 example:"bruno@example.com"`
	LoanDate        string `json:"LoanDate"        validate:"required,datetime=2006-01-02"     example:"2025-06-10"`
	DueDate         string `json:"DueDate"         validate:"required,datetime=2006-01-02"     example:"2025-06-17"`
	Note            string `json:"Note"            validate:"max=2000"                         example:"For the offsite"`
} // @name CreateLoanRequest

// ReturnLoanRequest is the request body for returning a loan. ReturnDate
// defaults to today.
type ReturnLoanRequest struct {
	LoanID     string `json:"LoanID"     validate:"required,max=255"                  example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	ReturnDate string `json:"ReturnDate" validate:"omitempty,datetime=2006-01-02"     example:"2025-06-15"`
	Note       string `json:"Note"       validate:"max=2000"                          example:"Returned with scratches"`
} // @name ReturnLoanRequest

// ItemResponse is the item payload inside the envelope.
type ItemResponse struct {
	ItemID    uuid.UUID `json:"ItemID"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"Name"      example:"Dell Latitude 7440"`
	Category  string    `json:"Category"  example:"Laptop"`
	AssetTag  string    `json:"AssetTag"  example:"LAP-0042"`
	Location  string    `json:"Location"  example:"IT storage room"`
	Note      string    `json:"Note"      example:"Charger included"`
	Status    string    `json:"Status"    example:"AVAILABLE" enums:"AVAILABLE,ON_LOAN"`
	CreatedAt time.Time `json:"CreatedAt" example:"2025-06-10T09:30:00Z"`
} // @name Item

// LoanResponse is the loan payload inside the envelope. ReturnDate is null
// until the loan is returned.
type LoanResponse struct {
	LoanID          uuid.UUID   `json:"LoanID"          example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	ItemID          uuid.UUID   `json:"ItemID"          example:"123e4567-e89b-12d3-a456-426614174000"`
	BorrowerName    string      `json:"BorrowerName"    example:"Bruno Costa"`
	BorrowerUnit    string      `json:"BorrowerUnit"    example:"Finance"`
	BorrowerContact string      `json:"BorrowerContact" example:"bruno@example.com"`
	LoanDate        models.Date `json:"LoanDate"        swaggertype:"string" example:"2025-06-10"`
	DueDate         models.Date `json:"DueDate"         swaggertype:"string" example:"2025-06-17"`
	ReturnDate      models.Date `json:"ReturnDate"      swaggertype:"string" example:"2025-06-15"`
	Note            string      `json:"Note"            example:"For the offsite"`
	ReturnNote      string      `json:"ReturnNote"      example:"Returned with scratches"`
	Status          string      `json:"Status"          example:"ACTIVE" enums:"ACTIVE,RETURNED,OVERDUE"`
	CreatedAt       time.Time   `json:"CreatedAt"       example:"2025-06-10T09:30:00Z"`
} // @name Loan

// HealthResponse documents the health payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
} // @name HealthResponse

// ErrorResponse documents every failure envelope.
type ErrorResponse struct {
	OK    bool            `json:"ok"    example:"false"`
	Data  any             `json:"data"  swaggertype:"object"`
	Error *envelope.Error `json:"error"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ItemID:    item.ID,
		Name:      item.Name.String(),
		Category:  item.Category,
		AssetTag:  item.AssetTag,
		Location:  item.Location,
		Note:      item.Note,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

func toLoanResponse(loan *models.Loan) LoanResponse {
	return LoanResponse{
		LoanID:          loan.ID,
		ItemID:          loan.ItemID,
		BorrowerName:    loan.Borrower.Name,
		BorrowerUnit:    loan.Borrower.Unit,
		BorrowerContact: loan.Borrower.Contact,
		LoanDate:        loan.LoanDate,
		DueDate:         loan.DueDate,
		ReturnDate:      loan.ReturnDate,
		Note:            loan.Note,
		ReturnNote:      loan.ReturnNote,
		Status:          string(loan.Status),
		CreatedAt:       loan.CreatedAt,
	}
}

func toLoanResponses(loans []*models.Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		out[i] = toLoanResponse(loan)
	}
	return out
}
