package domain

import "errors"

// Sentinel errors shared across the core. Callers classify failures with
// errors.Is; the HTTP layer maps each to a status code in one place.
var (
	ErrValidation       = errors.New("validation failed")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenMalformed = errors.New("token malformed")
	ErrForbidden      = errors.New("access forbidden")

	ErrStoreTimeout = errors.New("store timeout")
)
