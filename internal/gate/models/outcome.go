package models

import "github.com/dmitrijs2005/cyphergate/internal/common"

// OutcomeKind enumerates the results the gate reports to its caller.
type OutcomeKind int

const (
	OutcomeRejected OutcomeKind = iota
	OutcomeAuthorized
	OutcomeSetupRequired
	OutcomeLockedOut
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAuthorized:
		return "authorized"
	case OutcomeRejected:
		return "rejected"
	case OutcomeSetupRequired:
		return "setup_required"
	case OutcomeLockedOut:
		return "locked_out"
	default:
		return "unknown"
	}
}

// Outcome is the result of one authentication attempt or of a whole gate
// run. Identity is set only for OutcomeAuthorized.
type Outcome struct {
	Kind     OutcomeKind
	Identity string
}

func Authorized(identity string) Outcome {
	return Outcome{Kind: OutcomeAuthorized, Identity: identity}
}

func Rejected() Outcome {
	return Outcome{Kind: OutcomeRejected}
}

func LockedOut() Outcome {
	return Outcome{Kind: OutcomeLockedOut}
}

func (o Outcome) IsAuthorized() bool {
	return o.Kind == OutcomeAuthorized
}

// Err maps a failed outcome to its sentinel error; nil for any other kind.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeRejected:
		return common.ErrRejected
	case OutcomeLockedOut:
		return common.ErrLockedOut
	default:
		return nil
	}
}
