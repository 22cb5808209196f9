package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus is the availability flag of an Item.
type ItemStatus string

const (
	ItemAvailable ItemStatus = "AVAILABLE"
	ItemOnLoan    ItemStatus = "ON_LOAN"
)

// Valid reports whether s is a known availability value.
func (s ItemStatus) Valid() bool {
	return s == ItemAvailable || s == ItemOnLoan
}

// Item is a lendable physical asset. Status is ON_LOAN exactly when one loan
// referencing the item is stored ACTIVE; only the loan ledger flips it.
type Item struct {
	ID        uuid.UUID
	Name      ItemName
	Category  string
	AssetTag  string
	Location  string
	Note      string
	Status    ItemStatus
	CreatedAt time.Time
}

// ItemDetails carries the descriptive fields of a new Item.
type ItemDetails struct {
	Category string
	AssetTag string
	Location string
	Note     string
}

// NewItem constructs an AVAILABLE Item with a generated ID.
func NewItem(name ItemName, details ItemDetails, now time.Time) *Item {
	return &Item{
		ID:        uuid.New(),
		Name:      name,
		Category:  details.Category,
		AssetTag:  details.AssetTag,
		Location:  details.Location,
		Note:      details.Note,
		Status:    ItemAvailable,
		CreatedAt: now.UTC(),
	}
}

// Available reports whether the item can be lent.
func (i *Item) Available() bool {
	return i.Status == ItemAvailable
}

// Clone returns a copy safe to hand across a store boundary.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
