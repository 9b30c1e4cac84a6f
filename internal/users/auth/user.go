// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity layer of MADR.

It owns the account entity, verifies credentials at POST /token, and resolves
bearer tokens back to the account they were issued to.

Architecture:

  - Service: Login (credentials to token) and Resolve (token to principal).
  - Repository: Postgres for accounts, Redis for failed-login counters.
  - Security: argon2id password hashes and HMAC-signed JWTs from package sec.
*/
package auth

import (
	"time"

	"github.com/eduardoklosowski/madr/internal/platform/sec"
)

// Resource is the name used in user-facing messages about accounts.
const Resource = "Conta"

// # Domain Entities

// User is a registered account ("conta").
//
// Email and Username are each unique; Username is stored sanitized.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Principal returns the request identity for this account.
func (u *User) Principal() *sec.Principal {
	return &sec.Principal{UserID: u.ID, Email: u.Email, Username: u.Username}
}

// Token is the body returned by POST /token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// # Field Identifiers

// Global field names for validation in the authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
