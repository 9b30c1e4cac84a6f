// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/constants"
	"github.com/eduardoklosowski/madr/internal/platform/ctxutil"
	"github.com/eduardoklosowski/madr/internal/platform/respond"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
)

// TokenResolver turns a bearer token into the caller it was issued to.
//
// Implementations return [apperr.Unauthorized] for any token that must be
// rejected and other errors for infrastructure failures.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*sec.Principal, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
//
// The scheme is matched case-insensitively. ok is false when the header is
// missing, uses another scheme, or carries an empty token.
func BearerToken(request *http.Request) (token string, ok bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth resolves the bearer token of requests to a protected route group.
//
// # Flow
//  1. No usable bearer credentials: 401 `{"detail": "Not authenticated"}`.
//  2. Rejected token or unknown account: 401 `{"message": "Não autorizado"}`.
//  3. Otherwise the [*sec.Principal] is injected into the request context.
//
// Routes outside the group never look at the Authorization header.
func RequireAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Credentials ──
			token, ok := BearerToken(request)
			if !ok {
				respond.NotAuthenticated(writer)
				return
			}

			// ── 2. Resolution ──
			principal, err := resolver.Resolve(request.Context(), token)
			if err == nil && principal == nil {
				err = apperr.Internal(errNoPrincipal)
			}
			if err != nil {
				if !isInfrastructure(err) {
					err = apperr.Unauthorized()
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// isInfrastructure reports whether err is a server-side failure rather than a rejected credential.
func isInfrastructure(err error) bool {
	ae := apperr.As(err)
	return ae == nil || ae.HTTPStatus >= http.StatusInternalServerError
}

var errNoPrincipal = errors.New("middleware: resolver returned no principal")
