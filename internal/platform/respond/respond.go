// Copyright (c) 2026 Savora. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package is the single outcome normalizer. Every response across the
// application — success or failure — goes through it and follows one of two
// envelope shapes:
//
//	{"status": "success", "data": <payload>}
//	{"status": "error",   "message": <string>}
//
// In development mode error responses additionally carry an "error" object
// (failure class + field details) and a "stack" string. Production
// responses never include internal detail.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/savora-app/savora/internal/platform/apperr"
	"github.com/savora-app/savora/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
//
// Err and Stack are populated only in development mode.
type ErrorEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Err     *apperr.AppError `json:"error,omitempty"`
	Stack   string          `json:"stack,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Status: "success", Data: data})
}

// Created writes a 201 Created response with data wrapped in the success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Status: "success", Data: data})
}

// Error converts any Go error into the standardized error envelope.
//
// Unrecognized errors (anything that is not an [*apperr.AppError]) default
// to the generic 500 path: logged with full detail server-side, reported to
// the client as a canned message.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()

	appError := apperr.As(err)
	if appError == nil {
		logger := ctxutil.GetLogger(ctx)
		logger.ErrorContext(ctx, "unclassified_error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	// 5xx always gets a server-side log entry, including the hidden cause.
	if appError.Kind.HTTPStatus() >= 500 {
		logger := ctxutil.GetLogger(ctx)
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("kind", appError.Kind.String()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := ErrorEnvelope{
		Status:  "error",
		Message: appError.Message,
	}

	// Development mode: expose the variant and a stack for debugging.
	// The capture happens here, at the normalization point, so every error
	// path gets one without handlers having to care.
	if ctxutil.GetDevMode(ctx) {
		envelope.Err = appError
		envelope.Stack = string(debug.Stack())
	}

	JSON(writer, appError.Kind.HTTPStatus(), envelope)
}
