// Copyright (c) 2026 MADR contributors. All rights reserved.

package account_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/platform/sec"
	"github.com/eduardoklosowski/madr/internal/testutil"
	"github.com/eduardoklosowski/madr/internal/users/account"
)

/*
TestAccountRoutes walks registration, update and deletion over HTTP.
*/
func TestAccountRoutes(t *testing.T) {
	service, _ := newService()
	tokens := testutil.Tokens{}

	router := chi.NewRouter()
	router.Route("/conta", func(r chi.Router) {
		account.NewHandler(service).RegisterRoutes(r, tokens.RequireAuth())
	})

	body := map[string]string{"username": "ana", "email": "ana@madr.dev", "password": "segredo"}

	rec := testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/conta/", Body: body})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"email":"ana@madr.dev","username":"ana"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/conta/", Body: body})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Conta já consta no MADR"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/conta/", Body: map[string]string{"username": "bia", "email": "bia@madr.dev", "password": "segredo"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	tokens["ana-token"] = &sec.Principal{UserID: 1, Email: "ana@madr.dev", Username: "ana"}

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPut, Path: "/conta/1", Body: body})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPut, Path: "/conta/2", Token: "ana-token", Body: body})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Não autorizado"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPut, Path: "/conta/1", Token: "ana-token", Body: map[string]string{"username": "Ana Lu", "email": "ana@madr.dev", "password": "nova"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"ana@madr.dev","username":"ana lu"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodDelete, Path: "/conta/2", Token: "ana-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodDelete, Path: "/conta/1", Token: "ana-token"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Conta deletada no MADR"}`, rec.Body.String())
}
