package services

import "context"

// Severity tells the Announcer how to render a message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityNotice
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Announcer shows user-facing feedback. Implementations decide rendering.
type Announcer interface {
	Announce(msg string, sev Severity)
}

// CredentialPrompter collects one username/password pair. The caller wipes
// the returned password after use.
type CredentialPrompter interface {
	PromptCredentials(ctx context.Context) (username string, password []byte, err error)
}

// Registrar runs an interactive registration until it succeeds or fails
// with a non-validation error.
type Registrar interface {
	RunRegistration(ctx context.Context) error
}
