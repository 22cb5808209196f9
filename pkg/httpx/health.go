package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, RedisClient, EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to check in the health endpoint.
// A nil checker means the dependency is not configured (memory store, cache off)
// and is reported as "disabled" without affecting the overall status.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

// HealthStatus is the data payload of the health envelope.
type HealthStatus struct {
	Status   string `json:"status"    example:"ok"`
	Database string `json:"database"  example:"ok"`
	Redis    string `json:"redis"     example:"disabled"`
	EventBus string `json:"event_bus" example:"ok"`
} // @name HealthStatus

// HealthHandler returns an http.HandlerFunc that checks all registered
// HealthCheckers and reports degraded status if any of them fail.
// The response is always an ok envelope; callers read data.status.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthStatus{Status: "ok"}
		resp.Database = checkDependency(ctx, checks.Database, &resp.Status)
		resp.Redis = checkDependency(ctx, checks.Redis, &resp.Status)
		resp.EventBus = checkDependency(ctx, checks.EventBus, &resp.Status)

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		OK(w, status, resp)
	}
}

func checkDependency(ctx context.Context, c HealthChecker, overall *string) string {
	if c == nil {
		return "disabled"
	}
	if err := c.Ping(ctx); err != nil {
		*overall = "degraded"
		return "unreachable"
	}
	return "ok"
}
