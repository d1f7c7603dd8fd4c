// Copyright (c) 2026 Savora. All rights reserved.

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Every Savora entity (user accounts, recipes) is keyed by a UUIDv7 string.
// Because the value is time-sortable, primary key inserts stay append-only
// in PostgreSQL instead of fragmenting the index the way random UUIDv4 does.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// Entropy failure at that level is not a recoverable application error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// IsValid reports whether s parses as any RFC 4122 UUID.
//
// Handlers use it to reject malformed path parameters before they reach
// the storage layer.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
