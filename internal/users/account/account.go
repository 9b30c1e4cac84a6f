// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles registration and self-service management of accounts.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Storage: Any [Repository]; auth.PostgresUserRepository satisfies it.
  - Security: An account can only be changed or removed by its owner.
*/
package account

import (
	"context"

	"github.com/eduardoklosowski/madr/internal/users/auth"
)

// # Request Payloads

// Input is the body of POST /conta and PUT /conta/{id}.
type Input struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// # Repository Contracts

// Repository defines the persistence contract for account writes.
type Repository interface {
	/*
		Create persists a new account.

		Returns:
		  - error: dberr KindUnique when email or username is taken
	*/
	Create(ctx context.Context, user *auth.User) error

	/*
		Update replaces the mutable fields of an existing account.

		Returns:
		  - error: dberr KindUnique or KindNotFound
	*/
	Update(ctx context.Context, user *auth.User) error

	/*
		Delete removes an account by ID.
	*/
	Delete(ctx context.Context, id int) error
}
