package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/cyphergate/internal/gate/services"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"

	ansiClearScreen = "\033[H\033[2J"
)

// ConsoleAnnouncer writes one line per announcement, coloured by severity
// when Color is set.
type ConsoleAnnouncer struct {
	w     io.Writer
	Color bool
}

func NewConsoleAnnouncer(w io.Writer, color bool) *ConsoleAnnouncer {
	return &ConsoleAnnouncer{w: w, Color: color}
}

func (c *ConsoleAnnouncer) Announce(msg string, sev services.Severity) {
	fmt.Fprintln(c.w, c.paint(msg, severityColor(sev)))
}

// Prompt styles an input prompt.
func (c *ConsoleAnnouncer) Prompt(s string) string {
	return c.paint(s, ansiYellow)
}

// ShellPrompt styles the "<identity>$ " prompt.
func (c *ConsoleAnnouncer) ShellPrompt(identity string) string {
	return c.paint(identity+"$ ", ansiCyan)
}

// ClearScreen is a no-op without colour, so piped output stays clean.
func (c *ConsoleAnnouncer) ClearScreen() {
	if c.Color {
		fmt.Fprint(c.w, ansiClearScreen)
	}
}

func (c *ConsoleAnnouncer) paint(s, color string) string {
	if !c.Color {
		return s
	}
	return ansiBold + color + s + ansiReset
}

func severityColor(sev services.Severity) string {
	switch sev {
	case services.SeverityNotice:
		return ansiCyan
	case services.SeveritySuccess:
		return ansiGreen
	case services.SeverityWarning:
		return ansiYellow
	case services.SeverityError:
		return ansiRed
	default:
		return ""
	}
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
