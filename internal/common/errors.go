// Package common defines shared constants and sentinel errors used across
// the client and the emulator. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// account/auth errors
	ErrEmailExists        = errors.New("email exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// validation errors
	ErrValidation = errors.New("validation error")
)
