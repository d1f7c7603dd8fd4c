// Copyright (c) 2026 Savora. All rights reserved.

// Package dberr bridges low-level database errors and the application's
// closed error taxonomy.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/savora-app/savora/internal/platform/apperr"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// Wrap inspects a database error and maps it into an [apperr.AppError]
// variant. Internal database detail never reaches the client.
//
// # Mapping
//   - pgx.ErrNoRows            → NotFoundOrForbidden for the named resource.
//     Ownership scoping happens in the WHERE clause, so "no rows" covers
//     both a missing record and one the caller may not touch — the
//     conflation is the point.
//   - SQLSTATE 23505 (unique)  → Validation (duplicate unique field).
//   - anything else            → Internal, cause retained for logging.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFoundOrForbidden(resource)
	}

	if IsUniqueViolation(err) {
		return apperr.Validation("Duplicate value for a unique field")
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == uniqueViolation
}
