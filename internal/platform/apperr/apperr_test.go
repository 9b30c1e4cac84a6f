// Copyright (c) 2026 MADR contributors. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
)

/*
TestConstructors checks the status code and rendered message of each kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *apperr.AppError
		status  int
		message string
	}{
		{"invalid_login", apperr.InvalidLogin(), http.StatusBadRequest, "Email ou senha incorretos"},
		{"unauthorized", apperr.Unauthorized(), http.StatusUnauthorized, "Não autorizado"},
		{"not_found", apperr.NotFound("Romancista"), http.StatusNotFound, "Romancista não consta no MADR"},
		{"conflict", apperr.Conflict("Conta"), http.StatusConflict, "Conta já consta no MADR"},
		{"validation", apperr.Validation(), http.StatusUnprocessableEntity, "Dados inválidos"},
		{"rate_limited", apperr.RateLimited(30), http.StatusTooManyRequests, "Muitas tentativas. Tente novamente em 30s."},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "Erro interno do servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

/*
TestInternal_HidesCause ensures the cause is reachable for logging but not in the message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}

/*
TestAs finds an AppError through wrapping.
*/
func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("book_service: %w", apperr.NotFound("Livro"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, "NOT_FOUND"))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(errors.New("plain"), "NOT_FOUND"))
}
