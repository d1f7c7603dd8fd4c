// Copyright (c) 2026 Savora. All rights reserved.

/*
Package upload proxies member image uploads to an external image host.

# Pipeline

Validate first, forward second: extension allow-list, size ceiling, and
pixel-dimension checks all run against the in-memory bytes before a single
byte leaves the process. The external host only ever sees images the API
would accept.

# Avatars

The `type=avatar` variant additionally requires square dimensions, since
avatars render in fixed square frames across clients.
*/
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	// Register JPEG and PNG decoders for image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"

	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/internal/platform/constants"
	"github.com/savora-app/savora/pkg/uuidv7"
)

// # Contracts

// Host stores image bytes under a key and returns the public URL.
type Host interface {
	Store(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// KindAvatar is the upload type that enforces square dimensions.
const KindAvatar = "avatar"

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Service validates and forwards image uploads.
type Service struct {
	host   Host
	logger *slog.Logger
}

// NewService constructs the upload service.
func NewService(host Host, logger *slog.Logger) *Service {
	return &Service{host: host, logger: logger}
}

// Input is one received multipart file.
type Input struct {
	Filename string
	Data     []byte

	// Kind is the `type` query parameter; KindAvatar tightens the rules.
	Kind string
}

/*
Process validates the image and forwards it to the external host.

# Returns

  - string: Public URL of the stored image.
  - error: Validation failures (extension, size, dimensions) or host errors.
*/
func (service *Service) Process(ctx context.Context, input Input) (string, error) {

	// ── 1. Extension allow-list ──
	extension := strings.ToLower(filepath.Ext(input.Filename))
	contentType, ok := contentTypes[extension]
	if !ok {
		return "", apperr.Validation("Image must be a jpg, jpeg, or png file")
	}

	// ── 2. Size ceiling ──
	if len(input.Data) == 0 {
		return "", apperr.Validation("Image file is required")
	}
	if len(input.Data) > constants.MaxImageBytes {
		return "", apperr.Validation("Image must be 2MB or smaller")
	}

	// ── 3. Pixel dimensions ──
	// DecodeConfig reads only the header, never the full pixel data.
	dimensions, _, err := image.DecodeConfig(bytes.NewReader(input.Data))
	if err != nil {
		return "", apperr.Validation("Image file is corrupt or not a real image")
	}

	if dimensions.Width < constants.MinImageWidth {
		return "", apperr.Validation(fmt.Sprintf("Image width must be at least %dpx", constants.MinImageWidth))
	}

	if input.Kind == KindAvatar && dimensions.Width != dimensions.Height {
		return "", apperr.Validation("Avatar images must be square")
	}

	// ── 4. Forward to the host ──
	key := storageKey(extension)
	url, err := service.host.Store(ctx, key, contentType, input.Data)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("upload_service_store_failed: %w", err))
	}

	service.logger.Info("image_uploaded",
		slog.String("key", key),
		slog.Int("bytes", len(input.Data)),
		slog.String("kind", input.Kind),
	)

	return url, nil
}

// storageKey builds a date-partitioned object key so host-side listings
// stay manageable.
func storageKey(extension string) string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%s%s", d.Year(), d.Month(), d.Day(), uuidv7.New(), extension)
}
