// Copyright (c) 2026 Savora. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/internal/platform/validate"
)

func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("title", "").
		Required("description", "  ").
		MinLen("name", "C", 2).
		Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.KindValidation, appError.Kind)
	assert.Len(t, appError.Details, 3)
}

func TestValidator_PassReturnsNil(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("title", "Beef Stew").
		Email("email", "carl@mail.com").
		URL("image", "https://img.example.com/stew.jpg").
		Err()

	assert.NoError(t, err)
}

func TestValidator_Password(t *testing.T) {
	ok := func(value string) bool {
		v := &validate.Validator{}
		return v.Password("password", value, 8).Err() == nil
	}

	assert.True(t, ok("Carl12345678"))
	assert.True(t, ok("abcdefg1"))

	assert.False(t, ok("short1a"), "below minimum length")
	assert.False(t, ok("12345678"), "digits only")
	assert.False(t, ok("abcdefgh"), "letters only")
}

func TestValidator_URL(t *testing.T) {
	bad := []string{"ftp://img.example.com/a.jpg", "not-a-url", "//missing-scheme", ""}
	for _, value := range bad {
		v := &validate.Validator{}
		assert.Error(t, v.URL("image", value).Err(), "value %q", value)
	}

	v := &validate.Validator{}
	assert.NoError(t, v.URL("image", "http://img.example.com/a.jpg").Err())
}

func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.OneOf("gender", "female", "male", "female").Err())

	v = &validate.Validator{}
	assert.Error(t, v.OneOf("gender", "other", "male", "female").Err())
}

func TestValidator_UUID(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.UUID("userId", "018f2b9a-3d1c-7aaa-bddd-0123456789ab").Err())

	v = &validate.Validator{}
	assert.Error(t, v.UUID("userId", "5f3c7c0d0b2e").Err())
}
