package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
	"github.com/dmitrijs2005/cyphergate/internal/gate/config"
	"github.com/dmitrijs2005/cyphergate/internal/gate/services"
)

// reportedError marks an error the user has already been told about.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// HumanError maps an error to the text shown on the terminal.
func HumanError(err error) string {
	var ve *services.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve) && ve.Reason == services.ReasonEmptyField:
		return "Username or password cannot be empty."
	case errors.As(err, &ve) && ve.Reason == services.ReasonTooLong:
		return "Password is too long. Please choose a shorter one."
	case errors.Is(err, common.ErrLockedOut):
		return "Too many failed attempts. Exiting..."
	case errors.Is(err, common.ErrStorage):
		return fmt.Sprintf("Could not access the credential store: %v", err)
	case errors.Is(err, config.ErrInvalid):
		return fmt.Sprintf("Configuration error: %v", err)
	case errors.Is(err, cryptox.ErrUnsupportedAlgorithm):
		return fmt.Sprintf("Configuration error: %v", err)
	case errors.Is(err, io.EOF):
		return "Input closed. Exiting..."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// ExitCode maps the result of a command to the process exit status:
// 0 success, 1 lockout, 2 anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, common.ErrLockedOut):
		return 1
	default:
		return 2
	}
}
