// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
	"github.com/eduardoklosowski/madr/internal/platform/metrics"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
)

// # Service Definition

// LoginRecorder receives the outcome of every login attempt.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordLogin(string) {}

// Service handles credential verification and token resolution.
type Service struct {
	users    UserRepository
	guard    AttemptGuard
	tokens   *sec.TokenService
	recorder LoginRecorder
	logger   *slog.Logger
}

// ServiceOption customizes a [Service].
type ServiceOption func(*Service)

// WithAttemptGuard enables failed-login throttling.
func WithAttemptGuard(guard AttemptGuard) ServiceOption {
	return func(service *Service) { service.guard = guard }
}

// WithLoginRecorder reports login outcomes, usually to Prometheus.
func WithLoginRecorder(recorder LoginRecorder) ServiceOption {
	return func(service *Service) { service.recorder = recorder }
}

// NewService constructs a new authentication [Service].
func NewService(users UserRepository, tokens *sec.TokenService, logger *slog.Logger, opts ...ServiceOption) *Service {
	service := &Service{
		users:    users,
		guard:    NoopGuard{},
		tokens:   tokens,
		recorder: noopRecorder{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Login

// LoginInput carries the form fields of POST /token.
type LoginInput struct {
	// Identifier is the account email or username.
	Identifier string
	Password   string
}

/*
Login verifies credentials and issues a bearer token.

Description: The identifier is matched against email first, then username.
Unknown identifiers and wrong passwords produce the same error. When a guard
is configured, failures are counted and a locked identifier is refused before
the password is checked; guard outages are logged and do not block logins.

Returns:
  - *Token: Signed access token whose subject is the account email
  - error: apperr.InvalidLogin, apperr.RateLimited or apperr.Internal
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Token, error) {

	// ── 1. Lockout check ──
	if err := service.guard.Check(ctx, input.Identifier); err != nil {
		if apperr.HasCode(err, "RATE_LIMITED") {
			service.recorder.RecordLogin(metrics.LoginThrottled)
			service.logger.Warn("login_throttled", slog.String("identifier", input.Identifier))
			return nil, err
		}
		service.logger.Warn("login_guard_unavailable", slog.Any("error", err))
	}

	// ── 2. Credential verification ──
	user, err := service.users.FindByLogin(ctx, input.Identifier)
	if err != nil {
		if dberr.Is(err, dberr.KindNotFound) {
			return nil, service.rejectLogin(ctx, input.Identifier)
		}
		return nil, apperr.Internal(err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, service.rejectLogin(ctx, input.Identifier)
	}

	// ── 3. Token issuance ──
	if err := service.guard.Reset(ctx, input.Identifier); err != nil {
		service.logger.Warn("login_guard_reset_failed", slog.Any("error", err))
	}

	accessToken, err := service.tokens.IssueToken(user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.recorder.RecordLogin(metrics.LoginSuccess)
	service.logger.Info("user_logged_in", slog.Int("user_id", user.ID))

	return &Token{AccessToken: accessToken, TokenType: TokenTypeBearer}, nil
}

func (service *Service) rejectLogin(ctx context.Context, identifier string) error {
	if err := service.guard.RecordFailure(ctx, identifier); err != nil {
		service.logger.Warn("login_guard_record_failed", slog.Any("error", err))
	}
	service.recorder.RecordLogin(metrics.LoginInvalid)
	return apperr.InvalidLogin()
}

// # Token Resolution

/*
Resolve maps a bearer token to the account it was issued for.

Tokens that fail verification, and tokens whose account no longer exists,
are both rejected with apperr.Unauthorized.
*/
func (service *Service) Resolve(ctx context.Context, token string) (*sec.Principal, error) {
	email, err := service.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperr.Unauthorized()
	}

	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if dberr.Is(err, dberr.KindNotFound) {
			return nil, apperr.Unauthorized()
		}
		return nil, apperr.Internal(err)
	}

	return user.Principal(), nil
}
