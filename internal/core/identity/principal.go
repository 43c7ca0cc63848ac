// Package identity carries the authenticated principal from the transport layer into the
// core services. Services never read request-global state; they receive a Principal.
package identity

import "errors"

// ErrUnauthenticated is returned when an operation requires a principal and none was given
var ErrUnauthenticated = errors.New("authentication required")

// Principal is the identity behind a request. The zero value is the anonymous principal.
type Principal struct {
	UserID int64
}

// Anonymous is the principal of unauthenticated requests
var Anonymous = Principal{}

// User returns the principal for an authenticated user id
func User(id int64) Principal {
	return Principal{UserID: id}
}

// Authenticated reports whether the principal refers to a user
func (p Principal) Authenticated() bool {
	return p.UserID > 0
}

// Is reports whether p is the given user
func (p Principal) Is(userID int64) bool {
	return p.Authenticated() && p.UserID == userID
}
