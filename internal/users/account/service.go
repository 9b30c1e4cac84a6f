// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
	"github.com/eduardoklosowski/madr/internal/platform/validate"
	"github.com/eduardoklosowski/madr/internal/users/auth"
	"github.com/eduardoklosowski/madr/pkg/sanitize"
)

// # Service Layer

// Service orchestrates registration, update and removal of accounts.
type Service struct {
	accountRepository Repository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: repo,
		logger:            logger,
	}
}

/*
Register creates a new account.

Description: The username is sanitized before storage and the password is
stored as an argon2id hash.

Returns:
  - *auth.User: The created account
  - error: apperr.Validation, or apperr.Conflict when email or username is taken
*/
func (service *Service) Register(ctx context.Context, input Input) (*auth.User, error) {
	user, err := buildUser(input)
	if err != nil {
		return nil, err
	}

	if err := service.accountRepository.Create(ctx, user); err != nil {
		return nil, translate(err)
	}

	service.logger.Info("account_created", slog.Int("user_id", user.ID))
	return user, nil
}

/*
Update replaces email, username and password of the caller's own account.

Description: Ownership is checked before the body is validated, so a caller
targeting a foreign account always gets apperr.Unauthorized.
*/
func (service *Service) Update(ctx context.Context, caller *sec.Principal, id int, input Input) (*auth.User, error) {

	// ── 1. Ownership ──
	if !caller.Owns(id) {
		return nil, apperr.Unauthorized()
	}

	// ── 2. Validation ──
	user, err := buildUser(input)
	if err != nil {
		return nil, err
	}
	user.ID = id

	// ── 3. Persistence ──
	if err := service.accountRepository.Update(ctx, user); err != nil {
		return nil, translate(err)
	}

	service.logger.Info("account_updated", slog.Int("user_id", id))
	return user, nil
}

// Delete removes the caller's own account.
func (service *Service) Delete(ctx context.Context, caller *sec.Principal, id int) error {
	if !caller.Owns(id) {
		return apperr.Unauthorized()
	}

	if err := service.accountRepository.Delete(ctx, id); err != nil {
		return translate(err)
	}

	service.logger.Warn("account_deleted", slog.Int("user_id", id))
	return nil
}

func buildUser(input Input) (*auth.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	username := sanitize.Text(input.Username)
	if err := (&validate.Validator{}).NotEmpty(auth.FieldUsername, username).Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &auth.User{Email: input.Email, Username: username, PasswordHash: hash}, nil
}

// translate maps storage failures to the errors reported for accounts.
func translate(err error) error {
	switch dberr.KindOf(err) {
	case dberr.KindNotFound:
		return apperr.NotFound(auth.Resource)
	case dberr.KindUnique:
		return apperr.Conflict(auth.Resource)
	default:
		return apperr.Internal(err)
	}
}
