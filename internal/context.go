package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextAPIVersionKey ctxKey = "apiVersion"

// APIVersionFromContext returns the major API version resolved for the
// request, or 0 when none was stored.
func APIVersionFromContext(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if version, ok := ctx.Value(ContextAPIVersionKey).(int); ok {
		return version
	}
	return 0
}

func ContextWithAPIVersion(ctx context.Context, version int) context.Context {
	return context.WithValue(ctx, ContextAPIVersionKey, version)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
