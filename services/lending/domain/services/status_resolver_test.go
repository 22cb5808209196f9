package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/services/lending/domain/models"
)

func TestResolveStatus(t *testing.T) {
	today := models.Date{Year: 2024, Month: time.March, Day: 15}

	tests := []struct {
		name   string
		stored models.LoanStatus
		due    models.Date
		want   models.LoanStatus
	}{
		{"active due in future", models.LoanActive, today.AddDays(7), models.LoanActive},
		{"active due today", models.LoanActive, today, models.LoanActive},
		{"active due yesterday", models.LoanActive, today.AddDays(-1), models.LoanOverdue},
		{"active due last year", models.LoanActive, models.Date{Year: 2023, Month: time.December, Day: 31}, models.LoanOverdue},
		{"returned past due", models.LoanReturned, today.AddDays(-10), models.LoanReturned},
		{"returned future due", models.LoanReturned, today.AddDays(10), models.LoanReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.stored, tt.due, today); got != tt.want {
				t.Errorf("ResolveStatus(%s, %s, %s) = %s, want %s", tt.stored, tt.due, today, got, tt.want)
			}
		})
	}
}

func TestResolveLoan_DoesNotMutate(t *testing.T) {
	today := models.Date{Year: 2024, Month: time.March, Day: 15}
	loan := models.NewLoan(uuid.New(), models.Borrower{Name: "Ada", Contact: "x"},
		today.AddDays(-3), today.AddDays(-1), "", time.Now())

	resolved := ResolveLoan(loan, today)

	if resolved.Status != models.LoanOverdue {
		t.Fatalf("expected OVERDUE, got %s", resolved.Status)
	}
	if loan.Status != models.LoanActive {
		t.Fatalf("stored loan must stay ACTIVE, got %s", loan.Status)
	}
	if resolved.ID != loan.ID || resolved.DueDate != loan.DueDate {
		t.Fatal("resolved copy must keep the loan's fields")
	}
}
