// Copyright (c) 2026 Savora. All rights reserved.

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savora-app/savora/pkg/normalize"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, "carl@mail.com", normalize.Email("  Carl@Mail.com "))
	assert.Equal(t, "carl@mail.com", normalize.Email("carl@mail.com"))

	// Case folding handles non-ASCII letters, not just A-Z.
	assert.Equal(t, "müller@mail.com", normalize.Email("MÜLLER@mail.com"))
}

func TestKeyword(t *testing.T) {
	assert.Equal(t, "beef stew", normalize.Keyword(" Beef Stew "))
	assert.Equal(t, "", normalize.Keyword("   "))
}
