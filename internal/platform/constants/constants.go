// Copyright (c) 2026 Savora. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, upload limits, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Security: JWT issuer and password policy bounds.
  - Uploads: size and resolution limits for the image proxy.

Using this package keeps magic strings and magic numbers out of the business
logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "savora-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Security

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "savora.app"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MinNameLength is the minimum accepted display name length, in runes.
	MinNameLength = 2
)

// # Uploads

const (
	// MaxImageBytes is the upper bound on an uploaded image file (2 MB).
	MaxImageBytes = 2 << 20

	// MinImageWidth is the minimum accepted image width in pixels.
	MinImageWidth = 300

	// UploadHostRPS throttles outbound calls to the external image host,
	// which enforces its own API quota.
	UploadHostRPS = 5.0

	// UploadHostBurst is the burst allowance for the outbound throttle.
	UploadHostBurst = 10
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)
