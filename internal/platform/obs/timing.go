package obs

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

const tracerName = "rink-finder-service"

// RequestID returns the request id stored in ctx, or "-" outside a request.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return id
	}
	return "-"
}

// Time logs the duration of an operation when the returned func is called.
// Typical use: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}

// Trace is Time plus an OpenTelemetry span covering the same operation.
// The returned context carries the span for child operations.
func Trace(ctx context.Context, name string) (context.Context, func(errp *error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	done := Time(ctx, name)

	return ctx, func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		span.End()
		done(errp)
	}
}
