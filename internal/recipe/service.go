// Copyright (c) 2026 Savora. All rights reserved.

/*
Package recipe implements member-authored recipe management.

# Architecture

  - Service: Orchestrates listing, creation, partial update, and deletion.
  - Repository: Scoped persistence interface backed by PostgreSQL.

# Security

Ownership enforcement happens in the store: every single-recipe operation
carries an [access.Scope] that the SQL folds into its WHERE clause. The
service never fetches a recipe first to check ownership afterwards, so
there is no read-then-act window and no distinction between "missing" and
"not yours".
*/
package recipe

import (
	"context"
	"log/slog"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/pkg/normalize"
	"github.com/savora-app/savora/pkg/uuidv7"
)

const memberResource = "User"

// # Contracts

// MemberDirectory answers whether a member account exists. The user domain
// satisfies it; the indirection keeps recipe from importing user.
type MemberDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements recipe use cases.
type Service struct {
	repo    Repository
	members MemberDirectory
	logger  *slog.Logger
}

// NewService constructs the recipe service with its dependencies.
func NewService(repo Repository, members MemberDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		logger:  logger,
	}
}

// requireMember confirms the target account exists before any privilege
// check, so unknown IDs report not-found rather than a permission failure.
func (service *Service) requireMember(ctx context.Context, actor access.Actor, userID string) error {
	if !uuidv7.IsValid(userID) {
		return apperr.NotFoundOrForbidden(memberResource)
	}

	exists, err := service.members.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundOrForbidden(memberResource)
	}

	if !actor.CanActOn(userID) {
		return apperr.Forbidden("Insufficient permissions")
	}

	return nil
}

// # Listing

// List returns all recipes matching the options. Admin-only at the route.
func (service *Service) List(ctx context.Context, opts ListOptions) ([]*Recipe, error) {
	opts.OwnerID = ""
	opts.Keyword = normalize.Keyword(opts.Keyword)
	return service.repo.List(ctx, opts)
}

// ListByOwner returns one member's recipes. Limited to the member
// themselves and administrators.
func (service *Service) ListByOwner(ctx context.Context, actor access.Actor, userID string, opts ListOptions) ([]*Recipe, error) {
	if err := service.requireMember(ctx, actor, userID); err != nil {
		return nil, err
	}

	opts.OwnerID = userID
	opts.Keyword = normalize.Keyword(opts.Keyword)
	return service.repo.List(ctx, opts)
}

// Get returns one recipe within the actor's scope.
func (service *Service) Get(ctx context.Context, actor access.Actor, recipeID string) (*Recipe, error) {
	if !uuidv7.IsValid(recipeID) {
		return nil, apperr.NotFoundOrForbidden(recipeResource)
	}
	return service.repo.FindByID(ctx, access.ScopeFor(actor), recipeID)
}

// # Mutation

// CreateInput holds a fully validated new recipe.
type CreateInput struct {
	Title       string
	ImageURL    string
	Description string
	Steps       []Step
	Ingredients []Ingredient
	CookingTime string
	Notes       string
}

// Create persists a new recipe owned by the actor. Ownership is immutable
// from here on.
func (service *Service) Create(ctx context.Context, actor access.Actor, input CreateInput) (*Recipe, error) {
	entry := &Recipe{
		ID:          uuidv7.New(),
		Owner:       Owner{ID: actor.ID},
		Title:       input.Title,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Steps:       input.Steps,
		Ingredients: input.Ingredients,
		CookingTime: input.CookingTime,
		Notes:       input.Notes,
	}

	if err := service.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_created",
		slog.String("recipe_id", entry.ID),
		slog.String("owner_id", actor.ID),
	)

	return entry, nil
}

// Update applies a partial update within the actor's scope and returns the
// updated recipe. Zero matched rows reports NotFoundOrForbidden.
func (service *Service) Update(ctx context.Context, actor access.Actor, recipeID string, changes Changes) (*Recipe, error) {
	if !uuidv7.IsValid(recipeID) {
		return nil, apperr.NotFoundOrForbidden(recipeResource)
	}

	entry, err := service.repo.Update(ctx, access.ScopeFor(actor), recipeID, changes)
	if err != nil {
		return nil, err
	}

	service.logger.Info("recipe_updated", slog.String("recipe_id", recipeID))
	return entry, nil
}

// Delete removes one recipe within the actor's scope and returns it.
func (service *Service) Delete(ctx context.Context, actor access.Actor, recipeID string) (*Recipe, error) {
	if !uuidv7.IsValid(recipeID) {
		return nil, apperr.NotFoundOrForbidden(recipeResource)
	}

	entry, err := service.repo.Delete(ctx, access.ScopeFor(actor), recipeID)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("recipe_deleted",
		slog.String("recipe_id", recipeID),
		slog.String("deleted_by", actor.ID),
	)
	return entry, nil
}

// DeleteByOwner removes every recipe of one member. Limited to the member
// themselves and administrators.
func (service *Service) DeleteByOwner(ctx context.Context, actor access.Actor, userID string) error {
	if err := service.requireMember(ctx, actor, userID); err != nil {
		return err
	}

	if err := service.repo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}

	service.logger.Warn("recipes_purged_for_owner",
		slog.String("owner_id", userID),
		slog.String("deleted_by", actor.ID),
	)
	return nil
}

// DeleteAll removes every recipe. Admin-only at the route.
func (service *Service) DeleteAll(ctx context.Context) error {
	if err := service.repo.DeleteAll(ctx); err != nil {
		return err
	}

	service.logger.Warn("all_recipes_deleted")
	return nil
}
