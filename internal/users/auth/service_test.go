// Copyright (c) 2026 MADR contributors. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/metrics"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
	"github.com/eduardoklosowski/madr/internal/testutil"
	"github.com/eduardoklosowski/madr/internal/testutil/memstore"
	"github.com/eduardoklosowski/madr/internal/users/auth"
)

const password = "segredo"

// countingGuard locks an identifier after max failures.
type countingGuard struct {
	max      int
	failures map[string]int
	err      error
}

func (g *countingGuard) Check(_ context.Context, identifier string) error {
	if g.err != nil {
		return g.err
	}
	if g.failures[identifier] >= g.max {
		return apperr.RateLimited(60)
	}
	return nil
}

func (g *countingGuard) RecordFailure(_ context.Context, identifier string) error {
	if g.err != nil {
		return g.err
	}
	g.failures[identifier]++
	return nil
}

func (g *countingGuard) Reset(_ context.Context, identifier string) error {
	delete(g.failures, identifier)
	return g.err
}

type outcomes []string

func (o *outcomes) RecordLogin(outcome string) { *o = append(*o, outcome) }

type fixture struct {
	store   *memstore.Store
	tokens  *sec.TokenService
	service *auth.Service
	user    *auth.User
}

func newFixture(t *testing.T, opts ...auth.ServiceOption) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	store := memstore.New()
	user := &auth.User{Email: "ana@madr.dev", Username: "ana", PasswordHash: hash}
	require.NoError(t, store.Create(context.Background(), user))

	return &fixture{
		store:   store,
		tokens:  tokens,
		service: auth.NewService(store, tokens, testutil.Logger(), opts...),
		user:    user,
	}
}

/*
TestLogin_ByEmailOrUsername issues a token whose subject is the account email.
*/
func TestLogin_ByEmailOrUsername(t *testing.T) {
	f := newFixture(t)

	for _, identifier := range []string{"ana@madr.dev", "ana"} {
		t.Run(identifier, func(t *testing.T) {
			token, err := f.service.Login(context.Background(), auth.LoginInput{Identifier: identifier, Password: password})
			require.NoError(t, err)
			assert.Equal(t, "bearer", token.TokenType)

			subject, err := f.tokens.ValidateToken(token.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "ana@madr.dev", subject)
		})
	}
}

/*
TestLogin_Rejected returns the same 400 for unknown accounts and wrong passwords.
*/
func TestLogin_Rejected(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown_identifier", auth.LoginInput{Identifier: "bia@madr.dev", Password: password}},
		{"wrong_password", auth.LoginInput{Identifier: "ana", Password: "errado"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
			assert.Equal(t, "Email ou senha incorretos", err.Error())
		})
	}
}

/*
TestLogin_Throttled locks the identifier after repeated failures and clears on success.
*/
func TestLogin_Throttled(t *testing.T) {
	guard := &countingGuard{max: 2, failures: map[string]int{}}
	var recorded outcomes
	f := newFixture(t, auth.WithAttemptGuard(guard), auth.WithLoginRecorder(&recorded))
	ctx := context.Background()

	_, err := f.service.Login(ctx, auth.LoginInput{Identifier: "ana", Password: "x"})
	require.Error(t, err)

	// A success before the limit resets the counter.
	_, err = f.service.Login(ctx, auth.LoginInput{Identifier: "ana", Password: password})
	require.NoError(t, err)
	assert.Zero(t, guard.failures["ana"])

	for range 2 {
		_, err = f.service.Login(ctx, auth.LoginInput{Identifier: "ana", Password: "x"})
		require.Error(t, err)
	}

	_, err = f.service.Login(ctx, auth.LoginInput{Identifier: "ana", Password: password})
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, apperr.As(err).HTTPStatus)

	assert.Equal(t, outcomes{
		metrics.LoginInvalid, metrics.LoginSuccess,
		metrics.LoginInvalid, metrics.LoginInvalid,
		metrics.LoginThrottled,
	}, recorded)
}

/*
TestLogin_GuardUnavailable lets logins through when the guard store is down.
*/
func TestLogin_GuardUnavailable(t *testing.T) {
	guard := &countingGuard{max: 1, failures: map[string]int{}, err: errors.New("connection refused")}
	f := newFixture(t, auth.WithAttemptGuard(guard))

	token, err := f.service.Login(context.Background(), auth.LoginInput{Identifier: "ana", Password: password})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
}

/*
TestResolve maps tokens back to principals.
*/
func TestResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.tokens.IssueToken(f.user.Email)
	require.NoError(t, err)

	principal, err := f.service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, principal.UserID)
	assert.Equal(t, "ana", principal.Username)

	t.Run("garbage", func(t *testing.T) {
		_, err := f.service.Resolve(ctx, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})

	t.Run("deleted_account", func(t *testing.T) {
		require.NoError(t, f.store.Delete(ctx, f.user.ID))

		_, err := f.service.Resolve(ctx, token)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown_subject", func(t *testing.T) {
		orphan, err := f.tokens.IssueToken("ghost@madr.dev")
		require.NoError(t, err)

		_, err = f.service.Resolve(ctx, orphan)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})
}
