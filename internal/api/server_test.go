// Copyright (c) 2026 MADR contributors. All rights reserved.

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/api"
	"github.com/eduardoklosowski/madr/internal/core/author"
	"github.com/eduardoklosowski/madr/internal/core/book"
	"github.com/eduardoklosowski/madr/internal/platform/config"
	"github.com/eduardoklosowski/madr/internal/platform/metrics"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
	"github.com/eduardoklosowski/madr/internal/testutil"
	"github.com/eduardoklosowski/madr/internal/testutil/memstore"
	"github.com/eduardoklosowski/madr/internal/users/account"
	"github.com/eduardoklosowski/madr/internal/users/auth"
)

type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string                  { return c.name }
func (c stubChecker) Check(_ context.Context) error { return c.err }

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := testutil.Logger()
	store := memstore.New()

	tokens, err := sec.NewTokenService("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	metric := metrics.New()
	authService := auth.NewService(store, tokens, log, auth.WithLoginRecorder(metric))
	info, liveness, readiness := api.NewHealthHandlers(deps, log)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "development"}, log, authService, api.Handlers{
		Info:      info,
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metric,
		Token:     auth.NewHandler(authService),
		Account:   account.NewHandler(account.NewService(store, log)),
		Author:    author.NewHandler(author.NewService(store, log)),
		Book:      book.NewHandler(book.NewService(store, log)),
	})
	return server.Handler()
}

func login(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	request := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	return testutil.Decode[auth.Token](t, recorder).AccessToken
}

/*
TestServer_Catalog walks the main flow: register, log in, then build the catalog.
*/
func TestServer_Catalog(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	rec := testutil.Do(t, handler, testutil.Request{Method: http.MethodPost, Path: "/conta", Body: map[string]string{
		"username": "ana", "email": "ana@madr.dev", "password": "segredo",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token := login(t, handler, "ana", "segredo")

	rec = testutil.Do(t, handler, testutil.Request{Method: http.MethodPost, Path: "/romancista", Token: token, Body: map[string]string{"name": "Machado de Assis"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testutil.Do(t, handler, testutil.Request{Method: http.MethodPost, Path: "/livro", Token: token, Body: map[string]any{
		"title": "Dom Casmurro", "year": 1899, "romancista_id": 1,
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testutil.Do(t, handler, testutil.Request{Method: http.MethodGet, Path: "/livro?title=dom"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"livros":[{"id":1,"title":"dom casmurro","year":1899,"romancista_id":1}]}`, rec.Body.String())

	// Public routes ignore a broken Authorization header.
	rec = testutil.Do(t, handler, testutil.Request{Method: http.MethodGet, Path: "/romancista/1", Token: "garbage"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.Do(t, handler, testutil.Request{Method: http.MethodDelete, Path: "/conta/1", Token: token})
	assert.JSONEq(t, `{"message":"Conta deletada no MADR"}`, rec.Body.String())

	// The token outlives its account but no longer authenticates.
	rec = testutil.Do(t, handler, testutil.Request{Method: http.MethodDelete, Path: "/livro/1", Token: token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Não autorizado"}`, rec.Body.String())
}

/*
TestServer_Infrastructure covers metadata, probes, metrics and router fallbacks.
*/
func TestServer_Infrastructure(t *testing.T) {
	down := errors.New("dial tcp: connection refused")

	tests := []struct {
		name   string
		deps   api.HealthDependencies
		path   string
		method string
		status int
		body   string
	}{
		{"info", api.HealthDependencies{}, "/", http.MethodGet, http.StatusOK,
			`{"name":"MADR API","description":"Meu Acervo Digital de Romances","version":"0.1.0"}`},
		{"health_ok", api.HealthDependencies{Database: stubChecker{name: "postgres"}}, "/health", http.MethodGet, http.StatusOK,
			`{"message":"OK"}`},
		{"health_db_down", api.HealthDependencies{Database: stubChecker{name: "postgres", err: down}}, "/health", http.MethodGet, http.StatusInternalServerError,
			`{"detail":"Error on database connection"}`},
		{"ready", api.HealthDependencies{Database: stubChecker{name: "postgres"}, Extra: []api.Checker{stubChecker{name: "redis"}}}, "/ready", http.MethodGet, http.StatusOK,
			`{"status":"ready","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":true}]}`},
		{"ready_degraded", api.HealthDependencies{Database: stubChecker{name: "postgres"}, Extra: []api.Checker{stubChecker{name: "redis", err: down}}}, "/ready", http.MethodGet, http.StatusServiceUnavailable,
			`{"status":"degraded","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":false,"error":"dial tcp: connection refused"}]}`},
		{"unknown_route", api.HealthDependencies{}, "/nada", http.MethodGet, http.StatusNotFound,
			`{"detail":"Not Found"}`},
		{"wrong_method", api.HealthDependencies{}, "/health", http.MethodPost, http.StatusMethodNotAllowed,
			`{"detail":"Method Not Allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newServer(t, tt.deps)

			rec := testutil.Do(t, handler, testutil.Request{Method: tt.method, Path: tt.path})
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

/*
TestServer_Metrics exposes request and login counters.
*/
func TestServer_Metrics(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	testutil.Do(t, handler, testutil.Request{Method: http.MethodGet, Path: "/romancista"})

	form := url.Values{"username": {"nobody"}, "password": {"x"}}
	request := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	rec := testutil.Do(t, handler, testutil.Request{Method: http.MethodGet, Path: "/metrics"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Regexp(t, `madr_http_requests_total\{method="GET",route="/romancista/?",status="200"\} 1`, body)
	assert.Contains(t, body, `madr_auth_logins_total{outcome="invalid"} 1`)
}
