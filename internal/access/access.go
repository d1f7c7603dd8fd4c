// Copyright (c) 2026 Savora. All rights reserved.

/*
Package access resolves the identity and privileges behind every request.

# Architecture

The resolver is the single gateway between raw credentials and the domain
services: it extracts the bearer token, verifies it, and loads the current
identity from the store. Handlers never look at the Authorization header
themselves — they receive a fully resolved Actor through the context.

# Security

Resolution fails closed. A token whose subject no longer exists in the
store is rejected even if the signature is valid, so deleted accounts lose
access on their next request. All resolution failures collapse into a
single unauthenticated error; callers cannot distinguish a missing header
from an expired token from a deleted account.
*/
package access

import (
	"context"
	"strings"

	"github.com/savora-app/savora/internal/platform/apperr"
)

// # Roles

// Role is the privilege level attached to an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role carries administrative privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// # Actor

// Actor is a resolved identity: who is making the request and with what
// privileges. It is the only authentication artifact the domain layer sees.
type Actor struct {
	ID   string
	Role Role
}

// CanActOn reports whether the actor may operate on a resource owned by
// ownerID. Owners act on their own resources; admins act on anything.
func (a Actor) CanActOn(ownerID string) bool {
	return a.Role.IsAdmin() || a.ID == ownerID
}

// # Scope

// Scope restricts a data query to the rows an actor is allowed to touch.
// Stores translate it into a WHERE clause so authorization is enforced in
// the same statement that reads or mutates the row.
type Scope struct {
	// OwnerID limits matches to rows owned by this identity.
	OwnerID string

	// All bypasses the owner filter. Only admins get an unrestricted scope.
	All bool
}

// ScopeFor builds the widest scope the actor is entitled to.
func ScopeFor(actor Actor) Scope {
	if actor.Role.IsAdmin() {
		return Scope{All: true}
	}
	return Scope{OwnerID: actor.ID}
}

// # Collaborators

// TokenVerifier checks a compact token and returns the subject identity ID.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// IdentityLoader fetches the current actor state for a verified identity ID.
type IdentityLoader interface {
	LoadActor(ctx context.Context, identityID string) (*Actor, error)
}

// # Resolver

// Resolver turns request credentials into resolved actors.
type Resolver struct {
	verifier TokenVerifier
	loader   IdentityLoader
}

// NewResolver creates an access resolver.
func NewResolver(verifier TokenVerifier, loader IdentityLoader) *Resolver {
	return &Resolver{verifier: verifier, loader: loader}
}

// ExtractToken pulls the compact token out of an Authorization header value.
// The header must be exactly "Bearer <token>".
func ExtractToken(authorizationHeader string) (string, error) {
	if authorizationHeader == "" {
		return "", apperr.Unauthenticated("Authentication required")
	}

	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperr.Unauthenticated("Invalid authorization header")
	}

	return parts[1], nil
}

// Resolve verifies the token and loads the actor it names.
//
// # Returns
//
//   - Unauthenticated: token invalid, expired, or subject no longer exists.
//   - Internal: the identity store failed.
func (r *Resolver) Resolve(ctx context.Context, tokenString string) (*Actor, error) {

	// ── 1. Verify the token signature and claims ──
	identityID, err := r.verifier.Verify(tokenString)
	if err != nil {
		// Expired and malformed tokens are deliberately indistinguishable.
		return nil, apperr.Unauthenticated("Invalid or expired token")
	}

	// ── 2. Load the current identity state ──
	actor, err := r.loader.LoadActor(ctx, identityID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFoundOrForbidden) {
			// Subject was deleted after the token was issued. Fail closed.
			return nil, apperr.Unauthenticated("Invalid or expired token")
		}
		return nil, err
	}

	return actor, nil
}
