// Copyright (c) 2026 Savora. All rights reserved.

package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/pkg/uuidv7"
)

// # Test Doubles

// subjectVerifier treats the bearer token as the identity ID itself, which
// keeps handler tests independent of token signing.
type subjectVerifier struct{}

func (subjectVerifier) Verify(tokenString string) (string, error) {
	return tokenString, nil
}

type actorTable map[string]*access.Actor

func (table actorTable) LoadActor(_ context.Context, identityID string) (*access.Actor, error) {
	actor, ok := table[identityID]
	if !ok {
		return nil, apperr.NotFoundOrForbidden("User")
	}
	return actor, nil
}

type handlerFixture struct {
	repo    *memoryRepository
	handler http.Handler
}

func newHandlerFixture(t *testing.T, actors actorTable, members MemberDirectory) *handlerFixture {
	t.Helper()

	repo := newMemoryRepository()
	service := NewService(repo, members, slog.New(slog.NewTextHandler(io.Discard, nil)))
	resolver := access.NewResolver(subjectVerifier{}, actors)

	return &handlerFixture{
		repo:    repo,
		handler: NewHandler(service, resolver).Routes(),
	}
}

func (fixture *handlerFixture) do(t *testing.T, method, target string, actor access.Actor, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Authorization", "Bearer "+actor.ID)

	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, request)
	return recorder
}

func validBody() map[string]any {
	return map[string]any{
		"title":       "Onion rings",
		"image":       "https://images.savora.app/onion-rings.jpg",
		"description": "Crispy fried onion rings",
		"steps":       []map[string]any{{"stepNum": 1, "stepContent": "Slice the onion"}},
		"ingredients": []map[string]any{{"ingredientName": "Onion", "ingredientQty": "1"}},
		"cookingTime": "5 minutes",
	}
}

func testActors() (access.Actor, access.Actor, access.Actor, actorTable) {
	owner := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	stranger := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	admin := access.Actor{ID: uuidv7.New(), Role: access.RoleAdmin}
	table := actorTable{owner.ID: &owner, stranger.ID: &stranger, admin.ID: &admin}
	return owner, stranger, admin, table
}

// # Creation

func TestHandler_CreateRecipe(t *testing.T) {
	owner, _, _, actors := testActors()

	t.Run("valid payload creates a recipe owned by the caller", func(t *testing.T) {
		fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})

		recorder := fixture.do(t, http.MethodPost, "/", owner, validBody())

		require.Equal(t, http.StatusCreated, recorder.Code)
		require.Len(t, fixture.repo.entries, 1)
		for _, entry := range fixture.repo.entries {
			assert.Equal(t, owner.ID, entry.Owner.ID)
		}
	})

	t.Run("missing required field writes nothing", func(t *testing.T) {
		for _, field := range []string{"title", "image", "description", "steps", "ingredients", "cookingTime"} {
			body := validBody()
			delete(body, field)

			fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})
			recorder := fixture.do(t, http.MethodPost, "/", owner, body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, "field %q", field)
			assert.Empty(t, fixture.repo.entries, "field %q", field)
		}
	})

	t.Run("non-http image url is rejected", func(t *testing.T) {
		body := validBody()
		body["image"] = "ftp://images.savora.app/onion.jpg"

		fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})
		recorder := fixture.do(t, http.MethodPost, "/", owner, body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// # Partial Update

// A provided-but-blank field fails even when every other provided field is
// valid. Each present field is validated on its own.
func TestHandler_UpdateRecipe_RejectsBlankProvidedField(t *testing.T) {
	owner, _, _, actors := testActors()
	fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})

	created := fixture.do(t, http.MethodPost, "/", owner, validBody())
	require.Equal(t, http.StatusCreated, created.Code)

	var entryID string
	for id := range fixture.repo.entries {
		entryID = id
	}

	recorder := fixture.do(t, http.MethodPatch, "/"+entryID, owner, map[string]any{
		"title":       "",
		"description": "A perfectly valid description",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Onion rings", fixture.repo.entries[entryID].Title)
	assert.Equal(t, "Crispy fried onion rings", fixture.repo.entries[entryID].Description)
}

func TestHandler_UpdateRecipe_PartialUpdateKeepsAbsentFields(t *testing.T) {
	owner, _, _, actors := testActors()
	fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})

	created := fixture.do(t, http.MethodPost, "/", owner, validBody())
	require.Equal(t, http.StatusCreated, created.Code)

	var entryID string
	for id := range fixture.repo.entries {
		entryID = id
	}

	recorder := fixture.do(t, http.MethodPatch, "/"+entryID, owner, map[string]any{
		"cookingTime": "10 minutes",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "10 minutes", fixture.repo.entries[entryID].CookingTime)
	assert.Equal(t, "Onion rings", fixture.repo.entries[entryID].Title)
	assert.Len(t, fixture.repo.entries[entryID].Steps, 1)
}

func TestHandler_UpdateRecipe_EmptyBodyRejected(t *testing.T) {
	owner, _, _, actors := testActors()
	fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})

	created := fixture.do(t, http.MethodPost, "/", owner, validBody())
	require.Equal(t, http.StatusCreated, created.Code)

	var entryID string
	for id := range fixture.repo.entries {
		entryID = id
	}

	recorder := fixture.do(t, http.MethodPatch, "/"+entryID, owner, map[string]any{})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// # Cross-Identity Access

// A token for one member never reads or mutates another member's recipes.
func TestHandler_StrangerCannotTouchForeignRecipe(t *testing.T) {
	owner, stranger, _, actors := testActors()
	fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true, stranger.ID: true})

	created := fixture.do(t, http.MethodPost, "/", owner, validBody())
	require.Equal(t, http.StatusCreated, created.Code)

	var entryID string
	for id := range fixture.repo.entries {
		entryID = id
	}

	t.Run("read", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodGet, "/"+entryID, stranger, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("update", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodPatch, "/"+entryID, stranger,
			map[string]any{"title": "Hijacked"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Onion rings", fixture.repo.entries[entryID].Title)
	})

	t.Run("delete", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodDelete, "/"+entryID, stranger, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, fixture.repo.entries, entryID)
	})
}

// # Admin Routes

func TestHandler_AdminRoutes(t *testing.T) {
	owner, _, admin, actors := testActors()
	fixture := newHandlerFixture(t, actors, memberSet{owner.ID: true})

	created := fixture.do(t, http.MethodPost, "/", owner, validBody())
	require.Equal(t, http.StatusCreated, created.Code)

	t.Run("member cannot list all recipes", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodGet, "/", owner, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("admin lists all recipes", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodGet, "/", admin, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data []*Recipe `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Len(t, envelope.Data, 1)
	})

	t.Run("admin purges all recipes", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodDelete, "/", admin, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, fixture.repo.entries)
	})
}
