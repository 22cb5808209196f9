package models

import (
	"strings"
	"testing"
)

func TestNewItemName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"single character", "a", "a", false},
		{"normal name", "Projector EB-X51", "Projector EB-X51", false},
		{"surrounding whitespace trimmed", "  Laptop  ", "Laptop", false},
		{"255 characters", strings.Repeat("x", 255), strings.Repeat("x", 255), false},
		{"255 multibyte runes", strings.Repeat("筆", 255), strings.Repeat("筆", 255), false},
		{"empty", "", "", true},
		{"only whitespace", " \t ", "", true},
		{"256 characters", strings.Repeat("x", 256), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewItemName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewItemName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if n.String() != tt.want {
				t.Errorf("got %q, want %q", n.String(), tt.want)
			}
		})
	}
}
