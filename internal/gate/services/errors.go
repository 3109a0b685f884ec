package services

import (
	"fmt"

	"github.com/dmitrijs2005/cyphergate/internal/common"
)

// Reason classifies a ValidationError.
type Reason string

const (
	ReasonEmptyField Reason = "empty_field"
	ReasonTooLong    Reason = "too_long"
)

// ValidationError rejects registration input. It matches
// common.ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason Reason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmptyField:
		return fmt.Sprintf("%s cannot be empty", e.Field)
	case ReasonTooLong:
		return fmt.Sprintf("%s is too long", e.Field)
	default:
		return fmt.Sprintf("invalid %s", e.Field)
	}
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}
