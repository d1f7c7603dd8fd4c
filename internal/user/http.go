// Copyright (c) 2026 Savora. All rights reserved.

/*
HTTP delivery layer for member accounts.

The handler is a thin mediation layer between the web and the account
service: it decodes JSON, runs field validation, and maps results onto the
response envelope. Authorization decisions live in the service and the
access middleware, never here.
*/
package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/constants"
	requestutil "github.com/savora-app/savora/internal/platform/request"
	"github.com/savora-app/savora/internal/platform/respond"
	"github.com/savora-app/savora/internal/platform/validate"
)

// Handler implements member account HTTP endpoints.
type Handler struct {
	userService *Service
	resolver    *access.Resolver
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, resolver *access.Resolver) *Handler {
	return &Handler{userService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - POST   /signup             : Creates an account, returns a token (open).
//   - POST   /signin             : Authenticates, returns a token (open).
//   - PATCH  /password           : Rotates the caller's password.
//   - GET    /{userID}/profile   : Reads a profile (self or admin).
//   - PATCH  /{userID}/profile   : Partially updates a profile (self or admin).
//   - DELETE /{userID}           : Deletes an account plus its recipes (self or admin).
//   - GET    /                   : Lists all accounts (admin).
//   - DELETE /                   : Deletes all accounts and recipes (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signUp)
	router.Post("/signin", handler.signIn)

	// Protected endpoints
	router.Group(func(protected chi.Router) {
		protected.Use(access.Authenticate(handler.resolver))

		protected.Patch("/password", handler.updatePassword)
		protected.Get("/{userID}/profile", handler.getProfile)
		protected.Patch("/{userID}/profile", handler.updateProfile)
		protected.Delete("/{userID}", handler.deleteUser)

		protected.Group(func(admin chi.Router) {
			admin.Use(access.RequireAdmin())
			admin.Get("/", handler.listUsers)
			admin.Delete("/", handler.deleteAllUsers)
		})
	})

	return router
}

// # Request Payloads

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// updateProfileRequest uses pointers so an absent field and an empty one
// stay distinguishable.
type updateProfileRequest struct {
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
	Avatar *string `json:"avatar"`
}

// # Handlers

/*
signUp handles the creation of a new member account.

POST /api/v1/users/signup

Response:
  - 201: Session (token + profile)
  - 400: Validation failure or email already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, constants.MinNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password, constants.MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.userService.SignUp(request.Context(), SignUpInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
signIn authenticates a member and issues a token.

POST /api/v1/users/signin

Response:
  - 200: Session (token + profile)
  - 400: Unknown email or wrong password
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.userService.SignIn(request.Context(), SignInInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
updatePassword rotates the caller's password and re-issues a token.

PATCH /api/v1/users/password

Response:
  - 200: Session with the fresh token
  - 400: Mismatched confirmation, weak password, or unchanged password
*/
func (handler *Handler) updatePassword(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())

	var input updatePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password).
		Required(FieldConfirmPassword, input.ConfirmPassword).
		Password(FieldPassword, input.Password, constants.MinPasswordLength).
		Custom(FieldConfirmPassword, input.Password != input.ConfirmPassword, "Passwords do not match")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.userService.UpdatePassword(request.Context(), *actor, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
getProfile returns the profile behind the path ID.

GET /api/v1/users/{userID}/profile

Response:
  - 200: User profile
  - 400: Unknown member or insufficient permissions
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	userID := requestutil.Param(request, "userID")

	account, err := handler.userService.Get(request.Context(), *actor, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
updateProfile partially updates a profile and re-issues a token.

PATCH /api/v1/users/{userID}/profile

Each provided field is validated on its own; absent fields keep their
stored values. At least one field must be present.

Response:
  - 200: Session with the fresh token and updated profile
  - 400: Validation failure, unknown member, or insufficient permissions
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	userID := requestutil.Param(request, "userID")

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldName, input.Name == nil && input.Gender == nil && input.Avatar == nil,
		"At least one field is required")

	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MinLen(FieldName, *input.Name, constants.MinNameLength)
	}
	if input.Gender != nil {
		validator.OneOf(FieldGender, *input.Gender, string(GenderMale), string(GenderFemale))
	}
	if input.Avatar != nil {
		validator.URL(FieldAvatar, *input.Avatar)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.userService.UpdateProfile(request.Context(), *actor, userID, ProfileChanges{
		Name:      input.Name,
		Gender:    input.Gender,
		AvatarURL: input.Avatar,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
listUsers returns all accounts. Admin only.

GET /api/v1/users?sort=asc&keyword=carl

Query:
  - sort   : "asc" for oldest-first, anything else newest-first.
  - keyword: case-insensitive substring of the display name.
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	opts := ListOptions{
		Keyword: requestutil.Query(request, "keyword", ""),
		SortAsc: requestutil.Query(request, "sort", "") == "asc",
	}

	accounts, err := handler.userService.List(request.Context(), opts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, accounts)
}

/*
deleteUser removes an account and all its recipes.

DELETE /api/v1/users/{userID}

Response:
  - 200: The deleted profile
  - 400: Unknown member or insufficient permissions
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actor := access.MustActor(request.Context())
	userID := requestutil.Param(request, "userID")

	account, err := handler.userService.Delete(request.Context(), *actor, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
deleteAllUsers removes every account and every recipe. Admin only.

DELETE /api/v1/users

Response:
  - 200: Empty list
*/
func (handler *Handler) deleteAllUsers(writer http.ResponseWriter, request *http.Request) {
	if err := handler.userService.DeleteAll(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, []*User{})
}
