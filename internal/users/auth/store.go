// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for accounts.
//
// Lookups that match nothing and writes that hit a constraint return
// errors classified by package dberr.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.
	*/
	FindByID(ctx context.Context, id int) (*User, error)

	/*
		FindByEmail returns the account with the given email.
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		FindByLogin returns the account whose email OR username equals identifier.

		The identifier is compared as given; it is not sanitized first.
	*/
	FindByLogin(ctx context.Context, identifier string) (*User, error)

	/*
		Create persists a new account and fills in its ID and timestamps.
	*/
	Create(ctx context.Context, user *User) error

	/*
		Update replaces email, username and password hash of an existing account.
	*/
	Update(ctx context.Context, user *User) error

	/*
		Delete removes the account row.
	*/
	Delete(ctx context.Context, id int) error
}

// # Login Throttling

// AttemptGuard counts failed logins per identifier.
type AttemptGuard interface {

	/*
		Check returns an apperr.RateLimited error while the identifier is locked out.
	*/
	Check(ctx context.Context, identifier string) error

	/*
		RecordFailure counts one failed attempt for the identifier.
	*/
	RecordFailure(ctx context.Context, identifier string) error

	/*
		Reset forgets the failures of the identifier after a successful login.
	*/
	Reset(ctx context.Context, identifier string) error
}

// NoopGuard never locks anyone out. Used when Redis is not configured.
type NoopGuard struct{}

func (NoopGuard) Check(context.Context, string) error         { return nil }
func (NoopGuard) RecordFailure(context.Context, string) error { return nil }
func (NoopGuard) Reset(context.Context, string) error         { return nil }
