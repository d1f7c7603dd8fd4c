// Copyright (c) 2026 Savora. All rights reserved.

package user

import "context"

// # Inputs

// ProfileChanges carries a partial profile update. Nil fields are absent
// from the request and keep their stored values.
type ProfileChanges struct {
	Name      *string
	Gender    *string
	AvatarURL *string
}

// ListOptions filters and orders an account listing.
type ListOptions struct {
	// Keyword matches as a case-insensitive substring of the display name.
	Keyword string

	// SortAsc orders by creation time oldest-first; default is newest-first.
	SortAsc bool
}

// # Repository

// Repository defines the persistence contract for member accounts.
type Repository interface {
	// Create persists a new account. Duplicate email maps to a validation
	// error through the storage error translator.
	Create(ctx context.Context, account *User) error

	// FindByID fetches an account by primary key.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail fetches an account by its normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Exists reports whether an account row exists for id.
	Exists(ctx context.Context, id string) (bool, error)

	// List returns accounts matching the options.
	List(ctx context.Context, opts ListOptions) ([]*User, error)

	// UpdateProfile applies the non-nil changes and returns the updated row.
	UpdateProfile(ctx context.Context, id string, changes ProfileChanges) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Delete removes the account row and returns it as it was.
	Delete(ctx context.Context, id string) (*User, error)

	// DeleteAll removes every account row.
	DeleteAll(ctx context.Context) error
}
