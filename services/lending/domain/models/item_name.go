package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ItemName is a value object representing a valid item name.
// Surrounding whitespace is trimmed; 1 <= runes <= 255.
type ItemName string

const (
	minItemNameLength = 1
	maxItemNameLength = 255
)

// NewItemName trims s and constructs a valid ItemName or returns an error if
// constraints are violated.
func NewItemName(s string) (ItemName, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minItemNameLength {
		return "", errors.New("item name is required")
	}
	if n > maxItemNameLength {
		return "", fmt.Errorf("item name must not exceed %d characters", maxItemNameLength)
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
