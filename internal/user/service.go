// Copyright (c) 2026 Savora. All rights reserved.

/*
Package user implements member account management.

It covers the full account lifecycle: registration with password hashing,
credential sign-in, password rotation, profile reads and updates, and
account removal with a recipe cascade.

# Architecture

  - Service: Orchestrates business logic (SignUp, SignIn, profile ops).
  - Repository: Abstracted persistence interface backed by PostgreSQL.
  - Security: bcrypt hashing and HS256 token issuance via the sec package.

# Security

This service is the only writer of account credentials. Any change to
hashing, registration, or sign-in logic needs a security review.
*/
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/internal/platform/sec"
	"github.com/savora-app/savora/pkg/normalize"
	"github.com/savora-app/savora/pkg/uuidv7"
)

// # Contracts

// TokenIssuer defines the contract for minting signed identity tokens.
type TokenIssuer interface {
	// Issue creates a signed compact token whose subject is identityID.
	Issue(identityID string) (string, error)
}

// RecipePurger removes recipes in bulk on behalf of account deletion.
// The recipe domain satisfies it; the indirection keeps user from
// importing recipe.
type RecipePurger interface {
	// DeleteByOwner removes every recipe owned by ownerID.
	DeleteByOwner(ctx context.Context, ownerID string) error
	// DeleteAll removes every recipe.
	DeleteAll(ctx context.Context) error
}

// Service implements member account use cases.
type Service struct {
	repo    Repository
	recipes RecipePurger
	tokens  TokenIssuer
	logger  *slog.Logger
}

// NewService constructs the account service with its dependencies.
func NewService(repo Repository, recipes RecipePurger, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		recipes: recipes,
		tokens:  tokens,
		logger:  logger,
	}
}

// session mints a fresh token for the account and pairs it with the profile.
func (service *Service) session(account *User) (*Session, error) {
	token, err := service.tokens.Issue(account.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("user_service_token_issue_failed: %w", err))
	}
	return &Session{Token: token, User: account}, nil
}

// # Registration

// SignUpInput holds the data required to enroll a new member.
//
// There is deliberately no role field: every new account starts as a
// regular member and promotion happens out of band.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

/*
SignUp validates, hashes, and persists a brand new member account, then
issues its first token.

# Returns

  - *Session: Token plus the created profile.
  - error: Validation (email taken) or storage failures.
*/
func (service *Service) SignUp(ctx context.Context, input SignUpInput) (*Session, error) {

	// ── 1. Normalize the email before any lookup ──
	email := normalize.Email(input.Email)

	// ── 2. Verify email uniqueness with a client-safe message ──
	if _, err := service.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("This email is already registered")
	}

	// ── 3. Hash the password ──
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("user_service_hash_failed: %w", err))
	}

	// ── 4. Persist the account ──
	// Time-sortable ID to prevent PG index fragmentation.
	account := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Gender:       GenderMale,
		AvatarURL:    "",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         access.RoleUser,
	}

	if err := service.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up", slog.String("user_id", account.ID))

	return service.session(account)
}

// # Authentication

// SignInInput defines credentials for a sign-in attempt.
type SignInInput struct {
	Email    string
	Password string
}

/*
SignIn verifies credentials and issues a token.

The two failure modes return distinct messages ("not registered" vs
"wrong password"), both as validation errors so the response status
matches registration failures.
*/
func (service *Service) SignIn(ctx context.Context, input SignInInput) (*Session, error) {
	account, err := service.repo.FindByEmail(ctx, normalize.Email(input.Email))
	if err != nil {
		return nil, apperr.Validation("This account is not registered")
	}

	// bcrypt compares in constant time.
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Validation("Wrong password")
	}

	return service.session(account)
}

// # Password Rotation

/*
UpdatePassword replaces the caller's password and re-issues a token.

The new password must differ from the current one. Previously issued
tokens are stateless and stay valid until they expire; rotation narrows
future exposure, it does not revoke the past.
*/
func (service *Service) UpdatePassword(ctx context.Context, actor access.Actor, newPassword string) (*Session, error) {
	account, err := service.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if sec.CheckPasswordHash(newPassword, account.PasswordHash) {
		return nil, apperr.Validation("New password must differ from the current one")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("user_service_rehash_failed: %w", err))
	}

	if err := service.repo.UpdatePassword(ctx, account.ID, passwordHash); err != nil {
		return nil, err
	}
	account.PasswordHash = passwordHash

	service.logger.Info("user_password_updated", slog.String("user_id", account.ID))

	return service.session(account)
}

// # Profile

// requireActOn enforces the self-or-admin rule after confirming the target
// account exists, preserving the original check order: unknown IDs report
// not-found before any privilege failure.
func (service *Service) requireActOn(ctx context.Context, actor access.Actor, userID string) error {
	if !uuidv7.IsValid(userID) {
		return apperr.NotFoundOrForbidden(accountResource)
	}

	exists, err := service.repo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundOrForbidden(accountResource)
	}

	if !actor.CanActOn(userID) {
		return apperr.Forbidden("Insufficient permissions")
	}

	return nil
}

// Get returns the profile behind userID. Limited to the member themselves
// and administrators.
func (service *Service) Get(ctx context.Context, actor access.Actor, userID string) (*User, error) {
	if err := service.requireActOn(ctx, actor, userID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, userID)
}

/*
UpdateProfile applies a partial profile update and re-issues a token.

Absent fields keep their stored values; each present field has already
been validated by the transport layer. Email and role are not updatable
through this path.
*/
func (service *Service) UpdateProfile(ctx context.Context, actor access.Actor, userID string, changes ProfileChanges) (*Session, error) {
	if err := service.requireActOn(ctx, actor, userID); err != nil {
		return nil, err
	}

	account, err := service.repo.UpdateProfile(ctx, userID, changes)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return service.session(account)
}

// # Administration

// List returns accounts matching the options. Admin-only at the route.
func (service *Service) List(ctx context.Context, opts ListOptions) ([]*User, error) {
	opts.Keyword = normalize.Keyword(opts.Keyword)
	return service.repo.List(ctx, opts)
}

/*
Delete removes an account and cascades to its recipes.

The cascade is two independent statements, identity row first. If the
recipe sweep fails the account is already gone and its recipes are
orphaned until an operator re-runs the sweep; the error is logged and
returned, not compensated.
*/
func (service *Service) Delete(ctx context.Context, actor access.Actor, userID string) (*User, error) {
	if err := service.requireActOn(ctx, actor, userID); err != nil {
		return nil, err
	}

	account, err := service.repo.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("user_deleted",
		slog.String("user_id", userID),
		slog.String("deleted_by", actor.ID),
	)

	if err := service.recipes.DeleteByOwner(ctx, userID); err != nil {
		service.logger.Error("user_recipe_cascade_failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return account, nil
}

// DeleteAll removes every account and every recipe, accounts first.
// Admin-only at the route.
func (service *Service) DeleteAll(ctx context.Context) error {
	if err := service.repo.DeleteAll(ctx); err != nil {
		return err
	}

	if err := service.recipes.DeleteAll(ctx); err != nil {
		service.logger.Error("user_recipe_purge_failed", slog.String("error", err.Error()))
		return err
	}

	service.logger.Warn("all_users_deleted")
	return nil
}

// # Access Integration

// ActorSource adapts the account repository to the access resolver's
// identity loader.
type ActorSource struct {
	repo Repository
}

// NewActorSource creates the resolver-facing identity loader.
func NewActorSource(repo Repository) *ActorSource {
	return &ActorSource{repo: repo}
}

// LoadActor fetches the current role for a verified identity ID.
func (source *ActorSource) LoadActor(ctx context.Context, identityID string) (*access.Actor, error) {
	account, err := source.repo.FindByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return &access.Actor{ID: account.ID, Role: account.Role}, nil
}

var _ access.IdentityLoader = (*ActorSource)(nil)
