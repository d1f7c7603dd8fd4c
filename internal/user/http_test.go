// Copyright (c) 2026 Savora. All rights reserved.

package user

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/sec"
)

type handlerFixture struct {
	repo    *memoryRepository
	codec   *sec.TokenCodec
	handler http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	codec, err := sec.NewTokenCodec("test-secret-at-least-32-bytes-long", "savora.app", time.Hour)
	require.NoError(t, err)

	repo := newMemoryRepository()
	service := NewService(repo, &stubPurger{}, codec, slog.New(slog.NewTextHandler(io.Discard, nil)))
	resolver := access.NewResolver(codec, NewActorSource(repo))

	return &handlerFixture{
		repo:    repo,
		codec:   codec,
		handler: NewHandler(service, resolver).Routes(),
	}
}

func (fixture *handlerFixture) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
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
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, request)
	return recorder
}

// A smuggled role field in the signup payload must not grant privileges:
// every new account is a regular member.
func TestHandler_SignUp_IgnoresSmuggledRole(t *testing.T) {
	fixture := newHandlerFixture(t)

	recorder := fixture.do(t, http.MethodPost, "/signup", "", map[string]any{
		"name":     "Mallory",
		"email":    "mallory@mail.com",
		"password": "Mallory12345678",
		"role":     "admin",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.NotEmpty(t, envelope.Data.Token)

	stored := fixture.repo.accounts[envelope.Data.User.ID]
	require.NotNil(t, stored)
	assert.Equal(t, access.RoleUser, stored.Role)

	// Role and password hash never appear in the payload.
	assert.NotContains(t, recorder.Body.String(), `"role"`)
	assert.NotContains(t, recorder.Body.String(), stored.PasswordHash)
}

func TestHandler_SignUp_Validation(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "short name", body: map[string]any{"name": "C", "email": "c@mail.com", "password": "Carl12345678"}},
		{name: "invalid email", body: map[string]any{"name": "Carl", "email": "not-an-email", "password": "Carl12345678"}},
		{name: "password without digits", body: map[string]any{"name": "Carl", "email": "c@mail.com", "password": "OnlyLetters"}},
		{name: "password too short", body: map[string]any{"name": "Carl", "email": "c@mail.com", "password": "Ab1"}},
		{name: "empty body", body: map[string]any{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fixture := newHandlerFixture(t)

			recorder := fixture.do(t, http.MethodPost, "/signup", "", testCase.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Empty(t, fixture.repo.accounts, "no account may be written on validation failure")
		})
	}
}

// A provided-but-blank field is rejected instead of silently clearing the
// stored value.
func TestHandler_UpdateProfile_RejectsBlankProvidedField(t *testing.T) {
	fixture := newHandlerFixture(t)
	account := seedAccount(t, fixture.repo, "Carl", "carl@mail.com", "Carl12345678", access.RoleUser)

	token, err := fixture.codec.Issue(account.ID)
	require.NoError(t, err)

	recorder := fixture.do(t, http.MethodPatch, "/"+account.ID+"/profile", token,
		map[string]any{"name": ""})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Carl", fixture.repo.accounts[account.ID].Name)
}

func TestHandler_UpdateProfile_PartialUpdateReissuesToken(t *testing.T) {
	fixture := newHandlerFixture(t)
	account := seedAccount(t, fixture.repo, "Carl", "carl@mail.com", "Carl12345678", access.RoleUser)

	token, err := fixture.codec.Issue(account.ID)
	require.NoError(t, err)

	recorder := fixture.do(t, http.MethodPatch, "/"+account.ID+"/profile", token,
		map[string]any{"gender": "female"})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, GenderFemale, fixture.repo.accounts[account.ID].Gender)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Carl", fixture.repo.accounts[account.ID].Name)

	var envelope struct {
		Data Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Token)
}

func TestHandler_AdminRoutes(t *testing.T) {
	fixture := newHandlerFixture(t)
	member := seedAccount(t, fixture.repo, "Carl", "carl@mail.com", "Carl12345678", access.RoleUser)
	admin := seedAccount(t, fixture.repo, "Admin", "admin@mail.com", "Admin12345678", access.RoleAdmin)

	memberToken, err := fixture.codec.Issue(member.ID)
	require.NoError(t, err)
	adminToken, err := fixture.codec.Issue(admin.ID)
	require.NoError(t, err)

	t.Run("member cannot list accounts", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodGet, "/", memberToken, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("admin lists accounts", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodGet, "/", adminToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("anonymous request is unauthenticated", func(t *testing.T) {
		recorder := fixture.do(t, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
