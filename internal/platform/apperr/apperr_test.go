// Copyright (c) 2026 Savora. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savora-app/savora/internal/platform/apperr"
)

func TestKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, 401, apperr.KindUnauthenticated.HTTPStatus())

	// Authorization shortfalls are plain client errors in this API, never
	// 403/404 — the status line must not reveal why the request failed.
	assert.Equal(t, 400, apperr.KindForbidden.HTTPStatus())
	assert.Equal(t, 400, apperr.KindValidation.HTTPStatus())
	assert.Equal(t, 400, apperr.KindNotFoundOrForbidden.HTTPStatus())

	assert.Equal(t, 500, apperr.KindInternal.HTTPStatus())
}

func TestAs_TraversesWrappedChain(t *testing.T) {
	base := apperr.NotFoundOrForbidden("Recipe")
	wrapped := fmt.Errorf("recipe_service_get_failed: %w", base)

	found := apperr.As(wrapped)
	assert.NotNil(t, found)
	assert.Equal(t, apperr.KindNotFoundOrForbidden, found.Kind)
	assert.Equal(t, "Recipe not found or access denied", found.Message)
}

func TestAs_NilForForeignErrors(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("boom")))
}

func TestInternal_KeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Internal(cause)

	assert.Equal(t, "An unexpected error occurred", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", apperr.Unauthenticated("Not signed in"))

	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	assert.False(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.False(t, apperr.IsKind(errors.New("boom"), apperr.KindInternal))
}
