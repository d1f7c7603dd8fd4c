// Copyright (c) 2026 Savora. All rights reserved.

// Package ctxutil provides helpers for values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/savora-app/savora/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Environment

// WithDevMode returns a new context flagged as development mode.
//
// The error normalizer uses the flag to decide whether internal error
// detail (cause, stack) may be exposed in the response envelope.
func WithDevMode(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, ctxkey.KeyDevMode, enabled)
}

// GetDevMode reports whether the request runs in development mode.
// Defaults to false (production behaviour) when the flag is absent.
func GetDevMode(ctx context.Context) bool {
	enabled, _ := ctx.Value(ctxkey.KeyDevMode).(bool)
	return enabled
}
