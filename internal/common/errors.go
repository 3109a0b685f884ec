// Package common defines shared sentinel errors and small helpers used across
// the CypherGate packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("credential record not found")
	ErrStorage  = errors.New("storage error")

	// Registration input errors.
	ErrValidation = errors.New("validation error")

	// Authentication errors.
	ErrRejected  = errors.New("username or password is wrong")
	ErrLockedOut = errors.New("too many failed attempts")
)
