package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is an unexported key type so no other package can collide with
// the logger value stored in a context.
type ctxKey struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerCtxKey = ctxKey{}

// WithLogger attaches logger to ctx so callees can retrieve it with
// FromContext instead of taking a logger parameter.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// FromContext returns the logger attached by WithLogger, falling back to
// the package default when none is present.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
