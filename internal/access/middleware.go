// Copyright (c) 2026 Savora. All rights reserved.

package access

import (
	"context"
	"net/http"

	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/internal/platform/constants"
	"github.com/savora-app/savora/internal/platform/ctxkey"
	"github.com/savora-app/savora/internal/platform/respond"
)

// WithActor stores a resolved actor in the context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ctxkey.KeyActor, actor)
}

// ActorFrom retrieves the resolved actor from the context. The boolean is
// false on routes that never went through Authenticate.
func ActorFrom(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(ctxkey.KeyActor).(*Actor)
	return actor, ok && actor != nil
}

// MustActor retrieves the resolved actor and panics if absent. Use only in
// handlers mounted behind Authenticate, where absence is a wiring bug.
func MustActor(ctx context.Context) *Actor {
	actor, ok := ActorFrom(ctx)
	if !ok {
		panic("access: actor missing from context; route not behind Authenticate")
	}
	return actor
}

// Authenticate resolves the bearer token on every request and injects the
// actor into the context. Requests that cannot be resolved are rejected.
func Authenticate(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			tokenString, err := ExtractToken(request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			actor, err := resolver.Resolve(request.Context(), tokenString)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := WithActor(request.Context(), actor)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose actor lacks administrative privileges.
// Mount it after Authenticate.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			actor, ok := ActorFrom(request.Context())
			if !ok {
				respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
				return
			}

			if !actor.Role.IsAdmin() {
				respond.Error(writer, request, apperr.Forbidden("Administrator privileges required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
