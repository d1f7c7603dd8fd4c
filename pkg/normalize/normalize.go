// Copyright (c) 2026 Savora. All rights reserved.

// Package normalize provides Unicode-aware canonical forms for stored and
// searched text.
//
// # Usage
//
// Emails are normalized before both storage and lookup so that
// "Carl@Mail.com" and "carl@mail.com" resolve to the same account. Search
// keywords go through the same fold so substring matching is
// case-insensitive for non-ASCII titles too.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Email returns the canonical form of an email address: surrounding
// whitespace removed, Unicode NFC, case-folded.
//
// The result is what the unique index in the users table is built over.
func Email(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Keyword returns the canonical form of a search keyword.
//
// Trimmed and case-folded only — no NFC, because the fold already maps
// compatibility variants used in CJK titles.
func Keyword(s string) string {
	return folder.String(strings.TrimSpace(s))
}
