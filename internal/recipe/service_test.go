// Copyright (c) 2026 Savora. All rights reserved.

package recipe

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/pkg/uuidv7"
)

// # Test Doubles

// memoryRepository is an in-memory [Repository] that honors scopes the way
// the SQL does: out-of-scope rows behave exactly like missing rows.
type memoryRepository struct {
	entries map[string]*Recipe
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{entries: map[string]*Recipe{}}
}

func (repo *memoryRepository) inScope(entry *Recipe, scope access.Scope) bool {
	return scope.All || entry.Owner.ID == scope.OwnerID
}

func (repo *memoryRepository) Create(_ context.Context, entry *Recipe) error {
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	repo.entries[entry.ID] = entry
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, scope access.Scope, id string) (*Recipe, error) {
	entry, ok := repo.entries[id]
	if !ok || !repo.inScope(entry, scope) {
		return nil, apperr.NotFoundOrForbidden(recipeResource)
	}
	return entry, nil
}

func (repo *memoryRepository) List(_ context.Context, opts ListOptions) ([]*Recipe, error) {
	entries := []*Recipe{}
	for _, entry := range repo.entries {
		if opts.OwnerID != "" && entry.Owner.ID != opts.OwnerID {
			continue
		}
		if opts.Keyword != "" && !strings.Contains(strings.ToLower(entry.Title), opts.Keyword) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if opts.SortAsc {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[j].CreatedAt.Before(entries[i].CreatedAt)
	})
	return entries, nil
}

func (repo *memoryRepository) Update(_ context.Context, scope access.Scope, id string, changes Changes) (*Recipe, error) {
	entry, ok := repo.entries[id]
	if !ok || !repo.inScope(entry, scope) {
		return nil, apperr.NotFoundOrForbidden(recipeResource)
	}
	if changes.Title != nil {
		entry.Title = *changes.Title
	}
	if changes.ImageURL != nil {
		entry.ImageURL = *changes.ImageURL
	}
	if changes.Description != nil {
		entry.Description = *changes.Description
	}
	if changes.Steps != nil {
		entry.Steps = changes.Steps
	}
	if changes.Ingredients != nil {
		entry.Ingredients = changes.Ingredients
	}
	if changes.CookingTime != nil {
		entry.CookingTime = *changes.CookingTime
	}
	if changes.Notes != nil {
		entry.Notes = *changes.Notes
	}
	entry.UpdatedAt = time.Now()
	return entry, nil
}

func (repo *memoryRepository) Delete(_ context.Context, scope access.Scope, id string) (*Recipe, error) {
	entry, ok := repo.entries[id]
	if !ok || !repo.inScope(entry, scope) {
		return nil, apperr.NotFoundOrForbidden(recipeResource)
	}
	delete(repo.entries, id)
	return entry, nil
}

func (repo *memoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, entry := range repo.entries {
		if entry.Owner.ID == ownerID {
			delete(repo.entries, id)
		}
	}
	return nil
}

func (repo *memoryRepository) DeleteAll(_ context.Context) error {
	repo.entries = map[string]*Recipe{}
	return nil
}

// memberSet is a fixed [MemberDirectory].
type memberSet map[string]bool

func (set memberSet) Exists(_ context.Context, id string) (bool, error) {
	return set[id], nil
}

func newTestService(repo Repository, members MemberDirectory) *Service {
	return NewService(repo, members, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validInput(title string) CreateInput {
	return CreateInput{
		Title:       title,
		ImageURL:    "https://images.savora.app/onion-rings.jpg",
		Description: "Crispy fried onion rings",
		Steps:       []Step{{StepNum: 1, StepContent: "Slice the onion into rings"}},
		Ingredients: []Ingredient{{IngredientName: "Onion", IngredientQty: "1"}},
		CookingTime: "5 minutes",
	}
}

func seedRecipe(t *testing.T, service *Service, ownerID, title string) *Recipe {
	t.Helper()
	entry, err := service.Create(context.Background(),
		access.Actor{ID: ownerID, Role: access.RoleUser}, validInput(title))
	require.NoError(t, err)
	return entry
}

// # Ownership Scoping

func TestService_Get_ScopeEnforcement(t *testing.T) {
	repo := newMemoryRepository()
	owner := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	stranger := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	admin := access.Actor{ID: uuidv7.New(), Role: access.RoleAdmin}
	service := newTestService(repo, memberSet{owner.ID: true, stranger.ID: true})

	entry := seedRecipe(t, service, owner.ID, "Onion rings")

	t.Run("owner reads own recipe", func(t *testing.T) {
		found, err := service.Get(context.Background(), owner, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, found.ID)
	})

	t.Run("stranger gets the same error as a missing recipe", func(t *testing.T) {
		_, strangerErr := service.Get(context.Background(), stranger, entry.ID)
		_, missingErr := service.Get(context.Background(), owner, uuidv7.New())

		require.Error(t, strangerErr)
		require.Error(t, missingErr)
		assert.Equal(t, apperr.As(missingErr).Message, apperr.As(strangerErr).Message)
		assert.True(t, apperr.IsKind(strangerErr, apperr.KindNotFoundOrForbidden))
	})

	t.Run("admin reads any recipe", func(t *testing.T) {
		found, err := service.Get(context.Background(), admin, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, found.ID)
	})
}

func TestService_Update_ScopeEnforcement(t *testing.T) {
	repo := newMemoryRepository()
	owner := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	stranger := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	service := newTestService(repo, memberSet{owner.ID: true, stranger.ID: true})

	entry := seedRecipe(t, service, owner.ID, "Onion rings")
	newTitle := "Hijacked"

	_, err := service.Update(context.Background(), stranger, entry.ID, Changes{Title: &newTitle})

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFoundOrForbidden))
	assert.Equal(t, "Onion rings", repo.entries[entry.ID].Title)
}

func TestService_Delete_ScopeEnforcement(t *testing.T) {
	repo := newMemoryRepository()
	owner := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	stranger := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	service := newTestService(repo, memberSet{owner.ID: true, stranger.ID: true})

	entry := seedRecipe(t, service, owner.ID, "Onion rings")

	_, err := service.Delete(context.Background(), stranger, entry.ID)

	require.Error(t, err)
	assert.Contains(t, repo.entries, entry.ID)
}

// # Creation

func TestService_Create(t *testing.T) {
	repo := newMemoryRepository()
	owner := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	service := newTestService(repo, memberSet{owner.ID: true})

	entry, err := service.Create(context.Background(), owner, validInput("Onion rings"))

	require.NoError(t, err)
	assert.Equal(t, owner.ID, entry.Owner.ID)
	assert.True(t, uuidv7.IsValid(entry.ID))
	assert.Equal(t, "Onion rings", repo.entries[entry.ID].Title)
}

// # Owner Listing & Purge

func TestService_ListByOwner(t *testing.T) {
	repo := newMemoryRepository()
	carl := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	vance := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	service := newTestService(repo, memberSet{carl.ID: true, vance.ID: true})

	seedRecipe(t, service, carl.ID, "Onion rings")
	seedRecipe(t, service, carl.ID, "Fried egg")
	seedRecipe(t, service, vance.ID, "Omelette")

	t.Run("member lists own recipes only", func(t *testing.T) {
		entries, err := service.ListByOwner(context.Background(), carl, carl.ID, ListOptions{})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("member cannot list another member's recipes", func(t *testing.T) {
		_, err := service.ListByOwner(context.Background(), carl, vance.ID, ListOptions{})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unknown member reports not found before privilege", func(t *testing.T) {
		_, err := service.ListByOwner(context.Background(), carl, uuidv7.New(), ListOptions{})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFoundOrForbidden))
	})

	t.Run("keyword filters on title", func(t *testing.T) {
		entries, err := service.ListByOwner(context.Background(), carl, carl.ID, ListOptions{Keyword: "EGG"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Fried egg", entries[0].Title)
	})
}

func TestService_DeleteByOwner_RemovesExactlyTheirRecipes(t *testing.T) {
	repo := newMemoryRepository()
	carl := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	vance := access.Actor{ID: uuidv7.New(), Role: access.RoleUser}
	service := newTestService(repo, memberSet{carl.ID: true, vance.ID: true})

	seedRecipe(t, service, carl.ID, "Onion rings")
	kept := seedRecipe(t, service, vance.ID, "Omelette")

	require.NoError(t, service.DeleteByOwner(context.Background(), carl, carl.ID))

	assert.Len(t, repo.entries, 1)
	assert.Contains(t, repo.entries, kept.ID)
}
