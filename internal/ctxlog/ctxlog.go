// Package ctxlog threads a *slog.Logger through a context.Context so that
// every component in a run logs with the same handler and base fields
// without needing the logger passed explicitly through every call.
package ctxlog

import (
	"context"
	"log/slog"
)

// ctxKey is unexported so no other package can collide with it.
type ctxKey struct{}

var loggerKey = ctxKey{}

// WithLogger attaches logger to ctx, returning the derived context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx. It panics if none was
// attached: every entry point into the scheduler is expected to call
// WithLogger first, so a missing logger means a caller forgot to wire one
// up, not a runtime condition to recover from.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}
