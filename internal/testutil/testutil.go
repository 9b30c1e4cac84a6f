// Copyright (c) 2026 MADR contributors. All rights reserved.

// Package testutil holds helpers shared by the HTTP and service tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/middleware"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
)

// Logger returns a logger that drops everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Tokens maps bearer tokens to principals. It implements middleware.TokenResolver.
type Tokens map[string]*sec.Principal

func (tokens Tokens) Resolve(_ context.Context, token string) (*sec.Principal, error) {
	principal, ok := tokens[token]
	if !ok {
		return nil, apperr.Unauthorized()
	}
	return principal, nil
}

// RequireAuth returns the auth middleware backed by tokens.
func (tokens Tokens) RequireAuth() func(http.Handler) http.Handler {
	return middleware.RequireAuth(tokens)
}

// Request describes one call made by [Do].
type Request struct {
	Method string
	Path   string
	Token  string
	Body   any
}

// Do serves req on handler and returns the recorded response.
//
// A string Body is sent as-is; anything else is JSON-encoded.
func Do(t *testing.T, handler http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch payload := req.Body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(payload)
	default:
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(req.Method, req.Path, body)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		request.Header.Set("Authorization", "Bearer "+req.Token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// Decode unmarshals the recorded JSON body into a T.
func Decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out), recorder.Body.String())
	return out
}
