// Package common defines shared sentinel errors and small helpers used across
// the client and server layers of taskkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorStorePoisoned = errors.New("store poisoned")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors, raised at the transport boundary.
	ErrorValidation = errors.New("validation error")
)
