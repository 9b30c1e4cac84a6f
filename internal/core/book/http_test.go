package book_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/core/author"
	"github.com/eduardoklosowski/madr/internal/core/book"
	"github.com/eduardoklosowski/madr/internal/testutil"
	"github.com/eduardoklosowski/madr/internal/testutil/memstore"
)

const token = "valid-token"

func newRouter() http.Handler {
	store := memstore.New()
	tokens := testutil.Tokens{token: {UserID: 1, Email: "ana@madr.dev", Username: "ana"}}

	router := chi.NewRouter()
	router.Route("/romancista", func(r chi.Router) {
		author.NewHandler(author.NewService(store, testutil.Logger())).RegisterRoutes(r, tokens.RequireAuth())
	})
	router.Route("/livro", func(r chi.Router) {
		book.NewHandler(book.NewService(store, testutil.Logger())).RegisterRoutes(r, tokens.RequireAuth())
	})
	return router
}

func seed(t *testing.T, router http.Handler) {
	t.Helper()

	rec := testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/romancista/", Token: token, Body: map[string]any{"name": "Machado de Assis"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/livro/", Token: token, Body: map[string]any{"title": "Dom Casmurro", "year": 1899, "romancista_id": 1}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"title":"dom casmurro","year":1899,"romancista_id":1}`, rec.Body.String())
}

/*
TestBookRoutes_Create covers authentication and the referenced author check.
*/
func TestBookRoutes_Create(t *testing.T) {
	router := newRouter()
	seed(t, router)

	payload := map[string]any{"title": "Iracema", "year": 1865, "romancista_id": 7}

	rec := testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/livro/", Body: payload})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/livro/", Token: token, Body: payload})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Romancista não consta no MADR"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/livro/", Token: token, Body: `{"title":"Iracema","year":"1865","romancista_id":1}`})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

/*
TestBookRoutes_Patch distinguishes omitted, null and supplied fields on the wire.
*/
func TestBookRoutes_Patch(t *testing.T) {
	router := newRouter()
	seed(t, router)

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"empty_object", `{}`, http.StatusOK, `{"id":1,"title":"dom casmurro","year":1899,"romancista_id":1}`},
		{"year_only", `{"year":1900}`, http.StatusOK, `{"id":1,"title":"dom casmurro","year":1900,"romancista_id":1}`},
		{"null_title", `{"title":null}`, http.StatusUnprocessableEntity, ""},
		{"negative_year", `{"year":-5}`, http.StatusUnprocessableEntity, ""},
		{"unknown_author", `{"romancista_id":9}`, http.StatusNotFound, `{"message":"Romancista não consta no MADR"}`},
		{"malformed", `{"year":`, http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.Do(t, router, testutil.Request{Method: http.MethodPatch, Path: "/livro/1", Token: token, Body: tt.body})
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.want != "" {
				assert.JSONEq(t, tt.want, rec.Body.String())
			}
		})
	}

	rec := testutil.Do(t, router, testutil.Request{Method: http.MethodPatch, Path: "/livro/50", Token: token, Body: `{"year":1900}`})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Livro não consta no MADR"}`, rec.Body.String())
}

/*
TestBookRoutes_List checks query filters and their validation.
*/
func TestBookRoutes_List(t *testing.T) {
	router := newRouter()
	seed(t, router)

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", http.StatusOK, 1},
		{"?title=casm", http.StatusOK, 1},
		{"?year=1899", http.StatusOK, 1},
		{"?year=1900", http.StatusOK, 0},
		{"?limit=0", http.StatusOK, 0},
		{"?offset=5", http.StatusOK, 0},
		{"?year=abc", http.StatusUnprocessableEntity, 0},
		{"?limit=-1", http.StatusUnprocessableEntity, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("query%s", tt.query), func(t *testing.T) {
			rec := testutil.Do(t, router, testutil.Request{Method: http.MethodGet, Path: "/livro/" + tt.query})
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.status == http.StatusOK {
				list := testutil.Decode[book.ListResponse](t, rec)
				assert.Len(t, list.Livros, tt.count)
			}
		})
	}
}

/*
TestBookRoutes_Delete checks the acknowledgement and the author cascade.
*/
func TestBookRoutes_Delete(t *testing.T) {
	router := newRouter()
	seed(t, router)

	rec := testutil.Do(t, router, testutil.Request{Method: http.MethodDelete, Path: "/livro/1", Token: token})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Livro deletado no MADR"}`, rec.Body.String())

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodDelete, Path: "/livro/1", Token: token})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodPost, Path: "/livro/", Token: token, Body: map[string]any{"title": "Helena", "year": 1876, "romancista_id": 1}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodDelete, Path: "/romancista/1", Token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.Do(t, router, testutil.Request{Method: http.MethodGet, Path: "/livro/"})
	assert.JSONEq(t, `{"livros":[]}`, rec.Body.String())
}
