package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
	"github.com/dmitrijs2005/cyphergate/internal/gate/repositories/credentials"
	"github.com/dmitrijs2005/cyphergate/internal/logging"
)

const (
	DefaultMaxAttempts  = 3
	DefaultFailureDelay = time.Second
)

// GateOptions tunes the attempt budget. Zero values select the defaults.
type GateOptions struct {
	MaxAttempts  int
	FailureDelay time.Duration
}

// SessionGate turns "is anybody registered" plus a bounded number of login
// attempts into one Outcome.
type SessionGate struct {
	store     credentials.Store
	auth      *AuthenticationService
	registrar Registrar
	prompter  CredentialPrompter
	announcer Announcer
	log       logging.Logger

	failureDelay time.Duration
	state        models.SessionState

	// sleep is a test seam.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewSessionGate(
	store credentials.Store,
	auth *AuthenticationService,
	registrar Registrar,
	prompter CredentialPrompter,
	announcer Announcer,
	log logging.Logger,
	opts GateOptions,
) *SessionGate {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.FailureDelay < 0 {
		opts.FailureDelay = 0
	}
	return &SessionGate{
		store:        store,
		auth:         auth,
		registrar:    registrar,
		prompter:     prompter,
		announcer:    announcer,
		log:          log,
		failureDelay: opts.FailureDelay,
		state:        models.SessionState{State: models.StateStart, MaxAttempts: opts.MaxAttempts},
		sleep:        sleepContext,
	}
}

// State returns a snapshot of the gate bookkeeping.
func (g *SessionGate) State() models.SessionState {
	return g.state
}

// Authorize runs the gate once. It returns OutcomeAuthorized with the
// identity, or OutcomeLockedOut after MaxAttempts rejections. A non-nil
// error means the gate could not reach a decision (storage failure, failed
// registration, closed input) and the process should stop.
func (g *SessionGate) Authorize(ctx context.Context) (models.Outcome, error) {
	if g.state.State.Terminal() {
		return models.Outcome{}, fmt.Errorf("session gate already finished in state %s", g.state.State)
	}

	exists, err := g.store.Exists(ctx)
	if err != nil {
		g.announcer.Announce(fmt.Sprintf("Error reading credentials: %v", err), SeverityError)
		return models.Outcome{}, err
	}

	if !exists {
		if err := g.register(ctx); err != nil {
			return models.Outcome{}, err
		}
	} else {
		g.announcer.Announce("User already signed up. Proceeding to login...", SeverityNotice)
	}

	g.state.State = models.StateReadyToAuthenticate
	record, err := g.store.Load(ctx)
	if err != nil {
		g.announcer.Announce(fmt.Sprintf("Error reading credentials: %v", err), SeverityError)
		return models.Outcome{}, err
	}

	return g.authenticate(ctx, record)
}

func (g *SessionGate) register(ctx context.Context) error {
	g.state.State = models.StateNeedsRegistration
	g.log.Info(ctx, "no credential record, registration required", "backend", g.store.Backend())
	g.announcer.Announce("User not signed up. Redirecting to signup...", SeverityWarning)

	if err := g.registrar.RunRegistration(ctx); err != nil {
		g.log.Error(ctx, "registration failed", "error", err)
		if errors.Is(err, common.ErrStorage) {
			g.announcer.Announce(fmt.Sprintf("Error writing credentials: %v", err), SeverityError)
		}
		return err
	}

	g.announcer.Announce("Signup complete. Please log in.", SeveritySuccess)
	return nil
}

func (g *SessionGate) authenticate(ctx context.Context, record models.CredentialRecord) (models.Outcome, error) {
	for {
		g.state.State = models.StateAuthenticating

		username, password, err := g.prompter.PromptCredentials(ctx)
		if err != nil {
			return models.Outcome{}, fmt.Errorf("read credentials: %w", err)
		}

		outcome := g.auth.Authenticate(username, password, record)
		common.WipeByteArray(password)

		if outcome.IsAuthorized() {
			g.state.State = models.StateAuthorized
			g.state.AuthorizedIdentity = outcome.Identity
			g.log.Info(ctx, "authorized", "attempt", g.state.AttemptsUsed+1)
			g.announcer.Announce("Login successful!", SeveritySuccess)
			return outcome, nil
		}

		g.state.AttemptsUsed++
		g.log.Info(ctx, "attempt rejected", "attempt", g.state.AttemptsUsed, "max", g.state.MaxAttempts, "reason", outcome.Err())
		g.announcer.Announce("Password or username is wrong. Please try again...", SeverityError)

		if err := g.sleep(ctx, g.failureDelay); err != nil {
			return models.Outcome{}, err
		}

		if g.state.AttemptsUsed >= g.state.MaxAttempts {
			g.state.State = models.StateLockedOut
			g.log.Warn(ctx, "locked out", "attempts", g.state.AttemptsUsed)
			g.announcer.Announce("Too many failed attempts. Exiting...", SeverityError)
			return models.LockedOut(), nil
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
