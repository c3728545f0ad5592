// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto HTTP status codes: ErrUsernameExists and ErrEmailExists
// become 409, ErrNotFound becomes 404, ErrAlreadyConfirmed becomes 409
// on the verification endpoint, and so on.
package repository

import "errors"

// ErrUsernameExists is returned when a profile with the requested
// username already exists. Registration pre-checks the username before
// creating an auth identity; the unique key on profiles.username is the
// backstop for the race between check and insert.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when a user with the same email already
// has an auth identity.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a record does not exist or is not owned
// by the caller. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned by Authenticate for a bad
// email/password pair. Handlers respond 401 without distinguishing
// which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAlreadyConfirmed is returned when a supervisor attempts to confirm
// a signature request that has already left the Pending state. The
// Pending -> Confirmed transition is one-way.
var ErrAlreadyConfirmed = errors.New("signature already confirmed")

// ErrTokenExpired is returned when a password reset token is known but
// past its expiry or already used.
var ErrTokenExpired = errors.New("token expired")
