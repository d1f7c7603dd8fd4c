// Copyright (c) 2026 Savora. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Savora.

It provides the single error type that bridges the gap between low-level
storage/auth/validation failures and the HTTP responses the normalizer emits.

Architecture:

  - Kind: a closed enum of failure classes. Every error the service layer can
    produce is one of these variants; there is no string-keyed dispatch on
    error names anywhere in the system.
  - AppError: the variant value — kind, client-safe message, optional field
    details, optional server-side cause.
  - Mapping: Kind → HTTP status lives in exactly one switch ([Kind.HTTPStatus]).

Every error that leaves the service layer should be an [*AppError]; anything
else is treated as an unclassified internal fault by the normalizer.
*/
package apperr

import "errors"

// Kind identifies the failure class of an [AppError].
//
// The set is closed: adding a variant means extending [Kind.HTTPStatus] and
// [Kind.String], and the compiler-visible constant block below is the full
// taxonomy of the API.
type Kind uint8

const (
	// KindUnauthenticated covers missing/invalid/expired tokens and tokens
	// whose identity no longer exists. Always re-login territory.
	KindUnauthenticated Kind = iota + 1

	// KindForbidden means the caller is authenticated but lacks the required
	// role or ownership.
	KindForbidden

	// KindValidation covers malformed or missing input fields, including
	// duplicate-unique-key violations surfaced by the store.
	KindValidation

	// KindNotFoundOrForbidden is deliberately ambiguous: the target record
	// is absent OR not owned by the caller. The two cases are never
	// distinguished, so callers cannot probe for the existence of resources
	// they cannot access.
	KindNotFoundOrForbidden

	// KindInternal is anything unclassified. Logged server-side, reported to
	// the client as a generic message.
	KindInternal
)

// HTTPStatus maps the failure class to a response status code.
//
// Forbidden and NotFoundOrForbidden intentionally map to 400 rather than
// 403/404 — the API treats every authorization shortfall as a plain client
// error and leaks nothing through the status line.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated:
		return 401
	case KindForbidden, KindValidation, KindNotFoundOrForbidden:
		return 400
	default:
		return 500
	}
}

// String returns the machine-readable name of the failure class.
func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFoundOrForbidden:
		return "NOT_FOUND_OR_FORBIDDEN"
	default:
		return "INTERNAL_ERROR"
	}
}

// AppError is the canonical error type for the Savora API.
//
// # Security
//
// Cause is for server-side logging only and is never serialized to clients
// in production mode.
type AppError struct {
	// Kind is the closed failure class this error belongs to.
	Kind Kind `json:"kind"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// Details holds per-field validation errors for KindValidation responses.
	Details []FieldError `json:"details,omitempty"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Constructors (one per variant)

// Unauthenticated creates a 401 [AppError].
func Unauthenticated(msg string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden creates an insufficient-role/ownership [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// Validation creates a field-validation [AppError] with optional per-field details.
func Validation(msg string, details ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Details: details}
}

// NotFoundOrForbidden creates the deliberately conflated absent-or-not-owned
// [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFoundOrForbidden("Recipe") // "Recipe not found or access denied"
func NotFoundOrForbidden(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFoundOrForbidden,
		Message: resource + " not found or access denied",
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client in
// production mode.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind reports whether err (or any error in its chain) is an [*AppError]
// of the given kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
