// Copyright (c) 2026 Savora. All rights reserved.

package recipe

import (
	"context"

	"github.com/savora-app/savora/internal/access"
)

// # Inputs

// ListOptions filters and orders a recipe listing.
type ListOptions struct {
	// OwnerID, when non-empty, limits results to one owner.
	OwnerID string

	// Keyword matches as a case-insensitive substring of the title.
	Keyword string

	// SortAsc orders by creation time oldest-first; default is newest-first.
	SortAsc bool
}

// Changes carries a partial recipe update. Nil fields are absent from the
// request and keep their stored values.
type Changes struct {
	Title       *string
	ImageURL    *string
	Description *string
	Steps       []Step
	Ingredients []Ingredient
	CookingTime *string
	Notes       *string
}

// # Repository

// Repository defines the persistence contract for recipes.
//
// Every single-recipe operation takes an [access.Scope] and folds it into
// the WHERE clause: a non-admin caller can only ever match rows they own,
// so authorization and the data operation are one statement. Zero matched
// rows surfaces as NotFoundOrForbidden — deliberately indistinguishable.
type Repository interface {
	// Create persists a new recipe.
	Create(ctx context.Context, entry *Recipe) error

	// FindByID fetches one recipe within scope, owner profile joined.
	FindByID(ctx context.Context, scope access.Scope, id string) (*Recipe, error)

	// List returns recipes matching the options, owner profiles joined.
	List(ctx context.Context, opts ListOptions) ([]*Recipe, error)

	// Update applies the non-nil changes to a recipe within scope and
	// returns the updated row.
	Update(ctx context.Context, scope access.Scope, id string, changes Changes) (*Recipe, error)

	// Delete removes a recipe within scope and returns it as it was.
	Delete(ctx context.Context, scope access.Scope, id string) (*Recipe, error)

	// DeleteByOwner removes every recipe owned by ownerID.
	DeleteByOwner(ctx context.Context, ownerID string) error

	// DeleteAll removes every recipe.
	DeleteAll(ctx context.Context) error
}
