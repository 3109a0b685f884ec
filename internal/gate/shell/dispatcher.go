// Package shell hands authorized commands to the host command interpreter.
// Commands run verbatim; there is no filtering or sandboxing.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dmitrijs2005/cyphergate/internal/logging"
)

// IdentityEnv is set in the environment of every dispatched command.
const IdentityEnv = "CYPHERGATE_USER"

var ErrCommandFailed = errors.New("command exited with non-zero status")

// Dispatcher runs one command line on behalf of an authorized identity.
type Dispatcher interface {
	Dispatch(ctx context.Context, identity, command string) error
}

// ExecDispatcher runs commands through Program (sh -c, cmd /C, ...) with the
// given stdio attached.
type ExecDispatcher struct {
	Program string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	log logging.Logger
}

// DefaultProgram is the interpreter used when none is configured.
func DefaultProgram() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "sh"
}

// NewExecDispatcher attaches the process stdio. An empty program selects
// DefaultProgram.
func NewExecDispatcher(program string, log logging.Logger) *ExecDispatcher {
	if program == "" {
		program = DefaultProgram()
	}
	return &ExecDispatcher{
		Program: program,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		log:     log,
	}
}

func (d *ExecDispatcher) Dispatch(ctx context.Context, identity, command string) error {
	cmd := exec.CommandContext(ctx, d.Program, commandFlag(d.Program), command)
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr
	cmd.Env = append(os.Environ(), IdentityEnv+"="+identity)

	d.log.Debug(ctx, "dispatching command", "program", d.Program)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			d.log.Debug(ctx, "command failed", "exit_code", exitErr.ExitCode())
			return fmt.Errorf("%w: exit status %d", ErrCommandFailed, exitErr.ExitCode())
		}
		return fmt.Errorf("run %s: %w", d.Program, err)
	}
	return nil
}

// commandFlag returns the "run this string" switch for known interpreters.
func commandFlag(program string) string {
	base := strings.ToLower(program)
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".exe")

	switch base {
	case "cmd":
		return "/C"
	case "powershell", "pwsh":
		return "-Command"
	default:
		return "-c"
	}
}
