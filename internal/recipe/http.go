// Copyright (c) 2026 Savora. All rights reserved.

/*
HTTP delivery layer for recipes.

Every mutating endpoint follows the same shape: decode JSON, validate each
provided field on its own, then exactly one service call. Provided-but-
invalid fields always fail — a blank title in a partial update is an
error, never a silent no-op.
*/
package recipe

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/savora-app/savora/internal/access"
	requestutil "github.com/savora-app/savora/internal/platform/request"
	"github.com/savora-app/savora/internal/platform/respond"
	"github.com/savora-app/savora/internal/platform/validate"
)

// Handler implements recipe HTTP endpoints.
type Handler struct {
	recipeService *Service
	resolver      *access.Resolver
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, resolver *access.Resolver) *Handler {
	return &Handler{recipeService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with recipe routes. Every
// endpoint requires authentication.
//
// # Endpoints
//   - POST   /                : Creates a recipe owned by the caller.
//   - GET    /{recipeID}      : Reads one recipe (owner or admin).
//   - PATCH  /{recipeID}      : Partially updates a recipe (owner or admin).
//   - DELETE /{recipeID}      : Deletes a recipe (owner or admin).
//   - GET    /user/{userID}   : Lists a member's recipes (self or admin).
//   - DELETE /user/{userID}   : Deletes a member's recipes (self or admin).
//   - GET    /                : Lists all recipes (admin).
//   - DELETE /                : Deletes all recipes (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(access.Authenticate(handler.resolver))

	router.Post("/", handler.createRecipe)
	router.Get("/{recipeID}", handler.getRecipe)
	router.Patch("/{recipeID}", handler.updateRecipe)
	router.Delete("/{recipeID}", handler.deleteRecipe)
	router.Get("/user/{userID}", handler.listUserRecipes)
	router.Delete("/user/{userID}", handler.deleteUserRecipes)

	router.Group(func(admin chi.Router) {
		admin.Use(access.RequireAdmin())
		admin.Get("/", handler.listRecipes)
		admin.Delete("/", handler.deleteAllRecipes)
	})

	return router
}

// # Request Payloads

type createRecipeRequest struct {
	Title       string       `json:"title"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
	Steps       []Step       `json:"steps"`
	Ingredients []Ingredient `json:"ingredients"`
	CookingTime string       `json:"cookingTime"`
	Notes       string       `json:"notes"`
}

// updateRecipeRequest uses pointers and nilable slices so an absent field
// and an empty one stay distinguishable.
type updateRecipeRequest struct {
	Title       *string      `json:"title"`
	Image       *string      `json:"image"`
	Description *string      `json:"description"`
	Steps       []Step       `json:"steps"`
	Ingredients []Ingredient `json:"ingredients"`
	CookingTime *string      `json:"cookingTime"`
	Notes       *string      `json:"notes"`
}

func (input *updateRecipeRequest) empty() bool {
	return input.Title == nil && input.Image == nil && input.Description == nil &&
		input.Steps == nil && input.Ingredients == nil && input.CookingTime == nil &&
		input.Notes == nil
}

// # Field Validation

func validateSteps(validator *validate.Validator, steps []Step) {
	validator.Custom(FieldSteps, len(steps) == 0, "At least one step is required")
	for _, step := range steps {
		validator.Custom(FieldSteps, step.StepNum <= 0, "Step numbers must be positive")
		validator.Custom(FieldSteps, strings.TrimSpace(step.StepContent) == "", "Step content must not be empty")
	}
}

func validateIngredients(validator *validate.Validator, ingredients []Ingredient) {
	validator.Custom(FieldIngredients, len(ingredients) == 0, "At least one ingredient is required")
	for _, ingredient := range ingredients {
		validator.Custom(FieldIngredients, strings.TrimSpace(ingredient.IngredientName) == "", "Ingredient name must not be empty")
		validator.Custom(FieldIngredients, strings.TrimSpace(ingredient.IngredientQty) == "", "Ingredient quantity must not be empty")
	}
}

// # Handlers

/*
createRecipe persists a new recipe owned by the caller.

POST /api/v1/recipes

Response:
  - 201: The created recipe
  - 400: Any missing or invalid field; nothing is written
*/
func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())

	var input createRecipeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		Required(FieldImage, input.Image).
		URL(FieldImage, input.Image).
		Required(FieldDescription, input.Description).
		Required(FieldCookingTime, input.CookingTime)
	validateSteps(validator, input.Steps)
	validateIngredients(validator, input.Ingredients)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.recipeService.Create(request.Context(), *actor, CreateInput{
		Title:       input.Title,
		ImageURL:    input.Image,
		Description: input.Description,
		Steps:       input.Steps,
		Ingredients: input.Ingredients,
		CookingTime: input.CookingTime,
		Notes:       input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
getRecipe reads one recipe within the caller's scope.

GET /api/v1/recipes/{recipeID}

Response:
  - 200: The recipe with owner profile joined
  - 400: Missing recipe or a recipe the caller may not read
*/
func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	recipeID := requestutil.Param(request, "recipeID")

	entry, err := handler.recipeService.Get(request.Context(), *actor, recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
updateRecipe partially updates a recipe within the caller's scope.

PATCH /api/v1/recipes/{recipeID}

Every provided field is validated on its own — a blank provided field is
rejected even when other provided fields are valid.

Response:
  - 200: The updated recipe
  - 400: Validation failure, missing recipe, or a recipe the caller may not edit
*/
func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	recipeID := requestutil.Param(request, "recipeID")

	var input updateRecipeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldTitle, input.empty(), "At least one field is required")

	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title)
	}
	if input.Image != nil {
		validator.URL(FieldImage, *input.Image)
	}
	if input.Description != nil {
		validator.Required(FieldDescription, *input.Description)
	}
	if input.CookingTime != nil {
		validator.Required(FieldCookingTime, *input.CookingTime)
	}
	if input.Steps != nil {
		validateSteps(validator, input.Steps)
	}
	if input.Ingredients != nil {
		validateIngredients(validator, input.Ingredients)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.recipeService.Update(request.Context(), *actor, recipeID, Changes{
		Title:       input.Title,
		ImageURL:    input.Image,
		Description: input.Description,
		Steps:       input.Steps,
		Ingredients: input.Ingredients,
		CookingTime: input.CookingTime,
		Notes:       input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
deleteRecipe removes one recipe within the caller's scope.

DELETE /api/v1/recipes/{recipeID}

Response:
  - 200: The deleted recipe
  - 400: Missing recipe or a recipe the caller may not delete
*/
func (handler *Handler) deleteRecipe(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	recipeID := requestutil.Param(request, "recipeID")

	entry, err := handler.recipeService.Delete(request.Context(), *actor, recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
listUserRecipes lists one member's recipes.

GET /api/v1/recipes/user/{userID}?sort=asc&keyword=egg
*/
func (handler *Handler) listUserRecipes(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	userID := requestutil.Param(request, "userID")

	entries, err := handler.recipeService.ListByOwner(request.Context(), *actor, userID, ListOptions{
		Keyword: requestutil.Query(request, "keyword", ""),
		SortAsc: requestutil.Query(request, "sort", "") == "asc",
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
deleteUserRecipes removes every recipe of one member.

DELETE /api/v1/recipes/user/{userID}

Response:
  - 200: Empty list
*/
func (handler *Handler) deleteUserRecipes(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	userID := requestutil.Param(request, "userID")

	if err := handler.recipeService.DeleteByOwner(request.Context(), *actor, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, []*Recipe{})
}

/*
listRecipes lists every recipe. Admin only.

GET /api/v1/recipes?sort=asc&keyword=egg

Query:
  - sort   : "asc" for oldest-first, anything else newest-first.
  - keyword: case-insensitive substring of the title.
*/
func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.recipeService.List(request.Context(), ListOptions{
		Keyword: requestutil.Query(request, "keyword", ""),
		SortAsc: requestutil.Query(request, "sort", "") == "asc",
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
deleteAllRecipes removes every recipe. Admin only.

DELETE /api/v1/recipes

Response:
  - 200: Empty list
*/
func (handler *Handler) deleteAllRecipes(writer http.ResponseWriter, request *http.Request) {
	if err := handler.recipeService.DeleteAll(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, []*Recipe{})
}
