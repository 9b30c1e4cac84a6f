// Copyright (c) 2026 MADR contributors. All rights reserved.

package sec

// Principal is the authenticated caller of a request.
//
// It is rebuilt from the database on every request carrying a bearer token,
// so a deleted account stops authenticating immediately.
type Principal struct {
	UserID   int
	Email    string
	Username string
}

// Owns reports whether the caller is the owner of the account with the given id.
func (p *Principal) Owns(userID int) bool {
	return p != nil && p.UserID == userID
}
