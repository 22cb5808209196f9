// Package services contains stateless domain services for the lending bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

// ValidateName enforces business rules for ItemName beyond the structural
// constraints enforced by the ItemName constructor (trimmed, 1-255 runes).
// Control characters (tabs, newlines, NUL, DEL) are rejected.
func ValidateName(name models.ItemName) error {
	for _, r := range name.String() {
		if unicode.IsControl(r) {
			return errors.New("item name must not contain control characters")
		}
	}
	return nil
}

// ValidateItemForCreation performs cross-field validation on a fully-constructed
// Item before it is persisted.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}

	if err := ValidateName(item.Name); err != nil {
		return err
	}

	if strings.TrimSpace(item.Category) == "" {
		return errors.New("category is required")
	}

	if strings.TrimSpace(item.AssetTag) == "" {
		return errors.New("asset tag is required")
	}

	if item.Status != models.ItemAvailable {
		return fmt.Errorf("new items must be %s, got %q", models.ItemAvailable, item.Status)
	}

	if item.ID == uuid.Nil {
		return errors.New("id must be set")
	}

	return nil
}
