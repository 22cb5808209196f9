package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/libitemsflow/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func serveHealth(t *testing.T, checks httpx.HealthChecks) (*httptest.ResponseRecorder, bool, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	var body struct {
		OK   bool              `json:"ok"`
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, body.OK, body.Data
}

func TestHealthHandler_NothingConfigured(t *testing.T) {
	rr, ok, data := serveHealth(t, httpx.HealthChecks{})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !ok {
		t.Fatal("expected ok envelope")
	}
	if data["status"] != "ok" {
		t.Errorf("status: got %q, want %q", data["status"], "ok")
	}
	for _, dep := range []string{"database", "redis", "event_bus"} {
		if data[dep] != "disabled" {
			t.Errorf("%s: got %q, want disabled", dep, data[dep])
		}
	}
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	rr, _, data := serveHealth(t, httpx.HealthChecks{
		Database: &stubChecker{},
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if data["status"] != "ok" || data["database"] != "ok" || data["redis"] != "ok" || data["event_bus"] != "ok" {
		t.Errorf("unexpected response: %+v", data)
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	down := errors.New("conn refused")
	tests := []struct {
		name   string
		checks httpx.HealthChecks
		field  string
	}{
		{"database down", httpx.HealthChecks{Database: &stubChecker{err: down}, Redis: &stubChecker{}}, "database"},
		{"redis down", httpx.HealthChecks{Database: &stubChecker{}, Redis: &stubChecker{err: down}}, "redis"},
		{"event bus down", httpx.HealthChecks{Database: &stubChecker{}, EventBus: &stubChecker{err: down}}, "event_bus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _, data := serveHealth(t, tt.checks)
			if rr.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", rr.Code)
			}
			if data["status"] != "degraded" || data[tt.field] != "unreachable" {
				t.Errorf("unexpected response: %+v", data)
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr, _, _ := serveHealth(t, httpx.HealthChecks{})

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
