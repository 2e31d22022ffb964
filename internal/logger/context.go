package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// FromContextOr extracts the request logger, falling back to a service logger
// for calls made outside an HTTP request (batch workers, the CLI, tests).
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}

// WithFields returns a context whose logger carries fields in addition to
// those already attached, such as a batch item index under a request ID.
func WithFields(ctx context.Context, fallback *zap.Logger, fields ...zap.Field) context.Context {
	return ContextWithLogger(ctx, FromContextOr(ctx, fallback).With(fields...))
}
