// Copyright (c) 2026 Savora. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (request ID, logger,
// environment flag, acting identity). Using a private, unexported type for
// keys prevents collisions with third-party packages that also use context
// for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
//
// Even if another package uses "request_id" as a string key, it will not
// collide with this key type because [context.Context] matches on both the
// value AND the type.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyDevMode is the context key for the development-mode flag consumed
	// by the error normalizer (controls error/stack exposure).
	KeyDevMode key = "dev_mode"

	// KeyActor is the context key for the resolved acting identity
	// ([access.Actor]).
	KeyActor key = "actor"
)
