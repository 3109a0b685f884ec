package models

// GateState is a node of the session gate state machine.
//
//	Start -> NeedsRegistration -> ReadyToAuthenticate
//	Start -> ReadyToAuthenticate
//	ReadyToAuthenticate -> Authenticating -> Authorized | Authenticating | LockedOut
type GateState string

const (
	StateStart               GateState = "start"
	StateNeedsRegistration   GateState = "needs_registration"
	StateReadyToAuthenticate GateState = "ready_to_authenticate"
	StateAuthenticating      GateState = "authenticating"
	StateAuthorized          GateState = "authorized"
	StateLockedOut           GateState = "locked_out"
)

// Terminal reports whether no further transition can leave s.
func (s GateState) Terminal() bool {
	return s == StateAuthorized || s == StateLockedOut
}

// SessionState is the process-scoped bookkeeping of one gate run.
type SessionState struct {
	State              GateState
	AttemptsUsed       int
	MaxAttempts        int
	AuthorizedIdentity string
}

// AttemptsLeft never goes below zero.
func (s SessionState) AttemptsLeft() int {
	if left := s.MaxAttempts - s.AttemptsUsed; left > 0 {
		return left
	}
	return 0
}
