package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-03-15", Date{2024, time.March, 15}, false},
		{"2024-02-29", Date{2024, time.February, 29}, false},
		{"2023-02-29", Date{}, true},
		{"2024-13-01", Date{}, true},
		{"2024-3-5", Date{}, true},
		{"15/03/2024", Date{}, true},
		{"2024-03-15T10:00:00Z", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	d := Date{2024, time.March, 15}

	if !d.Before(Date{2024, time.March, 16}) {
		t.Error("expected 03-15 before 03-16")
	}
	if !d.Before(Date{2024, time.April, 1}) {
		t.Error("expected 03-15 before 04-01")
	}
	if !d.After(Date{2023, time.December, 31}) {
		t.Error("expected 2024-03-15 after 2023-12-31")
	}
	if d.Before(d) || d.After(d) {
		t.Error("a date is neither before nor after itself")
	}
}

func TestDate_AddDays(t *testing.T) {
	d := Date{2024, time.February, 28}
	if got := d.AddDays(1); got != (Date{2024, time.February, 29}) {
		t.Errorf("AddDays(1) = %v", got)
	}
	if got := d.AddDays(2); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays(2) = %v", got)
	}
	if got := d.AddDays(-28); got != (Date{2024, time.January, 31}) {
		t.Errorf("AddDays(-28) = %v", got)
	}
}

func TestToday_UsesLocation(t *testing.T) {
	// 2024-03-15 23:30 UTC is already 03-16 in Taipei (UTC+8).
	now := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)
	taipei := time.FixedZone("UTC+8", 8*60*60)

	if got := Today(now, time.UTC); got.String() != "2024-03-15" {
		t.Errorf("UTC today = %s", got)
	}
	if got := Today(now, taipei); got.String() != "2024-03-16" {
		t.Errorf("Taipei today = %s", got)
	}
	if got := Today(now, nil); got.String() != "2024-03-15" {
		t.Errorf("nil location today = %s", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		ReturnDate Date
	}

	b, err := json.Marshal(payload{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"ReturnDate":null}` {
		t.Errorf("zero date: got %s", b)
	}

	b, _ = json.Marshal(payload{ReturnDate: Date{2024, time.March, 5}})
	if string(b) != `{"ReturnDate":"2024-03-05"}` {
		t.Errorf("set date: got %s", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"ReturnDate":"2024-02-30"}`), &p); err == nil {
		t.Error("expected error for impossible date")
	}
	if err := json.Unmarshal([]byte(`{"ReturnDate":""}`), &p); err != nil || !p.ReturnDate.IsZero() {
		t.Errorf("empty string should decode to zero date, got %v (%v)", p.ReturnDate, err)
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2024-03-05" {
		t.Errorf("scan time: got %s", d)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("scan nil: got %v (%v)", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}

	v, err := Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v", v, err)
	}
}
