// Copyright (c) 2026 Savora. All rights reserved.

package upload

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/internal/platform/constants"
	requestutil "github.com/savora-app/savora/internal/platform/request"
	"github.com/savora-app/savora/internal/platform/respond"
	"github.com/savora-app/savora/internal/platform/validate"
)

// Multipart parse ceiling; slightly above the image limit so an oversized
// file reaches the validator and gets a proper message instead of a parse
// error.
const maxMultipartMemory = constants.MaxImageBytes + 1<<20

// Handler implements the image upload endpoint.
type Handler struct {
	uploadService *Service
	resolver      *access.Resolver
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, resolver *access.Resolver) *Handler {
	return &Handler{uploadService: service, resolver: resolver}
}

// Routes returns a [chi.Router] with the upload route.
//
// # Endpoints
//   - POST / : Accepts one multipart image, returns its public URL.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(access.Authenticate(handler.resolver))
	router.Post("/", handler.uploadImage)

	return router
}

/*
uploadImage validates a multipart image and forwards it to the image host.

POST /api/v1/upload?type=avatar

The first file in the form is used regardless of its field name.

Response:
  - 201: Public URL of the stored image
  - 400: Missing file, wrong extension, too large, too small, or non-square avatar
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError("image", "Image file is required"))
		return
	}

	header := firstFile(request)
	if header == nil {
		respond.Error(writer, request, validate.RequiredError("image", "Image file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	defer file.Close()

	// Read one byte past the ceiling so the validator can tell "at the
	// limit" from "over it".
	data, err := io.ReadAll(io.LimitReader(file, int64(constants.MaxImageBytes)+1))
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	url, err := handler.uploadService.Process(request.Context(), Input{
		Filename: header.Filename,
		Data:     data,
		Kind:     requestutil.Query(request, "type", ""),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, url)
}

// firstFile returns the first file header in the form, whatever its field
// name.
func firstFile(request *http.Request) *multipart.FileHeader {
	if request.MultipartForm == nil {
		return nil
	}
	for _, headers := range request.MultipartForm.File {
		if len(headers) > 0 {
			return headers[0]
		}
	}
	return nil
}
