package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/cyphergate/internal/gate/services"
	"github.com/dmitrijs2005/cyphergate/internal/gate/shell"
)

// shellIface is the surface runShell needs. The real App satisfies it;
// tests provide a lightweight stub.
type shellIface interface {
	Dispatch(ctx context.Context, identity, command string) error
	RunRegistration(ctx context.Context) error
	Announce(msg string, sev services.Severity)
	ShellPrompt(identity string) string
}

// Dispatch runs command through the configured shell program.
func (a *App) Dispatch(ctx context.Context, identity, command string) error {
	return a.dispatcher.Dispatch(ctx, identity, command)
}

func (a *App) ShellPrompt(identity string) string {
	return a.announcer.ShellPrompt(identity)
}

// runShell is the post-login loop. It prints "<identity>$ ", reads a line
// and handles it:
//
//	(empty)      ignored
//	exit | quit  say goodbye and return
//	sign up      re-register, then return
//	anything     run through the host shell
//
// A failing host command is reported and the loop continues. EOF ends the
// loop. Only a failed re-registration or a read error is returned.
func runShell(ctx context.Context, s shellIface, identity string, reader *bufio.Reader, w io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(w, s.ShellPrompt(identity))
		line, err := reader.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return err
		}
		if eof && line == "" {
			fmt.Fprintln(w)
			return nil
		}

		command := strings.TrimSpace(line)
		switch command {
		case "":
			continue

		case "exit", "quit":
			s.Announce("Exiting CypherGate. Goodbye!", services.SeveritySuccess)
			return nil

		case "sign up":
			if err := s.RunRegistration(ctx); err != nil {
				return err
			}
			s.Announce("Signup complete. Please log in again with the new credentials.", services.SeveritySuccess)
			return nil

		default:
			if err := s.Dispatch(ctx, identity, command); err != nil {
				if errors.Is(err, shell.ErrCommandFailed) {
					s.Announce(err.Error(), services.SeverityWarning)
				} else {
					s.Announce(HumanError(err), services.SeverityError)
				}
			}
		}
	}
}
