package obs

import (
	"context"
	"log/slog"
	"time"

	"nursery-locator/internal/platform/telemetry"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores id for later Time calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time starts a timer for op name. Call the returned func with a pointer to
// the operation's named error result (usually in a defer).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			telemetry.OpDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			slog.WarnContext(ctx, "op failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		telemetry.OpDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		slog.DebugContext(ctx, "op done", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
