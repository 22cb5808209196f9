package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/libitemsflow/pkg/envelope"
	"github.com/ghuser/libitemsflow/services/lending/domain"
)

const instrumentationName = "github.com/ghuser/libitemsflow/services/lending"

var tracer = otel.Tracer(instrumentationName)

// metrics holds the lending counters. Instruments come from the global meter
// provider, so they export through whatever telemetry.Setup installed and
// are no-ops in tests.
type metrics struct {
	itemsCreated  metric.Int64Counter
	loansCreated  metric.Int64Counter
	loansReturned metric.Int64Counter
	errors        metric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter(instrumentationName)
	m := &metrics{}
	// Instrument creation only fails on invalid names; the counters fall
	// back to no-ops in that case.
	m.itemsCreated, _ = meter.Int64Counter("lending.items.created",
		metric.WithDescription("Items registered"))
	m.loansCreated, _ = meter.Int64Counter("lending.loans.created",
		metric.WithDescription("Loans opened"))
	m.loansReturned, _ = meter.Int64Counter("lending.loans.returned",
		metric.WithDescription("Loans returned"))
	m.errors, _ = meter.Int64Counter("lending.operation.errors",
		metric.WithDescription("Failed lending operations by envelope code"))
	return m
}

func (m *metrics) recordError(ctx context.Context, op string, err error) {
	if m.errors == nil || err == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("code", domain.ErrorCode(err)),
	))
}

func inc(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}

// endSpan marks span failed when err is an internal error. Business
// rejections (validation, conflicts) are recorded as events only.
func endSpan(span trace.Span, err error) {
	if err != nil {
		code := domain.ErrorCode(err)
		span.SetAttributes(attribute.String("lending.error_code", code))
		if code == envelope.CodeInternal {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
