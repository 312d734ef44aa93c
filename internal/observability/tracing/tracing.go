package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InjectTraceID returns a context carrying a logger tagged with a fresh trace id.
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := zerolog.Ctx(ctx).With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// InjectEpoch tags the context logger with the epoch being reconciled.
func InjectEpoch(ctx context.Context, epoch uint64) context.Context {
	logger := zerolog.Ctx(ctx).With().Uint64("epoch", epoch).Logger()
	return logger.WithContext(ctx)
}
