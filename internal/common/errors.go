// Package common defines shared constants and sentinel errors used across
// client and mock API layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Mock API auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSimulatedFailure   = errors.New("simulated server failure")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)
