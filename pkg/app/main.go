package app

import (
	"time"

	"github.com/ghuser/libitemsflow/pkg/cache"
	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/pkg/database"
	"github.com/ghuser/libitemsflow/pkg/events"
	"github.com/ghuser/libitemsflow/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "loan created", "loan_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
//
// Db and EventBus are nil with the memory store; Redis is nil unless the
// item cache is enabled. Services must handle each being absent.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient

	// Clock and Location decide which calendar day is "today".
	Clock    clock.Clock
	Location *time.Location

	// IsProduction masks internal error messages in responses.
	IsProduction bool
}
