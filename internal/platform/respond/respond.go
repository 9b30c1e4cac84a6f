// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Successful payloads are written as-is; every failure is rendered through
// [Error] with a `{"message": ...}` body, plus `"detail"` for validation errors.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/constants"
	"github.com/eduardoklosowski/madr/internal/platform/ctxutil"
)

// Message is the body used for simple acknowledgements and every AppError.
type Message struct {
	Message string `json:"message"`
}

// Detail is the body used by framework-level responses (routing, authentication, health).
type Detail struct {
	Detail string `json:"detail"`
}

// ValidationEnvelope is the body of a 422 response.
type ValidationEnvelope struct {
	Message string              `json:"message"`
	Detail  []apperr.FieldError `json:"detail"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// Deleted writes the 200 acknowledgement returned after removing a resource.
func Deleted(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, Message{Message: message})
}

// DetailJSON writes a `{"detail": ...}` body with the given status code.
func DetailJSON(writer http.ResponseWriter, statusCode int, detail string) {
	JSON(writer, statusCode, Detail{Detail: detail})
}

// NotAuthenticated writes the 401 returned when a protected route gets no bearer credentials.
func NotAuthenticated(writer http.ResponseWriter) {
	writer.Header().Set(constants.HeaderWWWAuth, "Bearer")
	DetailJSON(writer, http.StatusUnauthorized, constants.MessageNotAuthenticated)
}

// NotFound is the router fallback for unknown paths.
func NotFound(writer http.ResponseWriter, _ *http.Request) {
	DetailJSON(writer, http.StatusNotFound, constants.MessageNotFound)
}

// MethodNotAllowed is the router fallback for known paths with an unsupported method.
func MethodNotAllowed(writer http.ResponseWriter, _ *http.Request) {
	DetailJSON(writer, http.StatusMethodNotAllowed, constants.MessageMethodNotAllowed)
}

// Error converts any Go error into a JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	if appError.Details != nil {
		JSON(writer, appError.HTTPStatus, ValidationEnvelope{
			Message: appError.Message,
			Detail:  appError.Details,
		})
		return
	}

	JSON(writer, appError.HTTPStatus, Message{Message: appError.Message})
}
