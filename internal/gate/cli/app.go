package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
	"github.com/dmitrijs2005/cyphergate/internal/gate/config"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
	"github.com/dmitrijs2005/cyphergate/internal/gate/repositories/credentials"
	"github.com/dmitrijs2005/cyphergate/internal/gate/services"
	"github.com/dmitrijs2005/cyphergate/internal/gate/shell"
	"github.com/dmitrijs2005/cyphergate/internal/logging"
)

// registrationService is the part of services.RegistrationService the CLI
// needs; tests substitute a fake.
type registrationService interface {
	Register(ctx context.Context, username string, password []byte) (models.CredentialRecord, error)
}

type App struct {
	config       *config.Config
	store        credentials.Store
	registration registrationService
	auth         *services.AuthenticationService
	dispatcher   shell.Dispatcher
	announcer    *ConsoleAnnouncer
	log          logging.Logger
	reader       *bufio.Reader
	out          io.Writer

	screenCleared bool
	closers       []func() error
}

// NewApp opens the configured store and builds the services around it.
// in/out carry the interactive session; errOut receives logs unless
// cfg.Log.File is set.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	a := &App{
		config:    cfg,
		announcer: NewConsoleAnnouncer(out, colorEnabled(out)),
		reader:    bufio.NewReader(in),
		out:       out,
	}

	logger, err := a.newLogger(errOut)
	if err != nil {
		return nil, err
	}
	a.log = logger.With("session", uuid.NewString())

	hasher, err := cryptox.NewHasher(hasherOptions(cfg.Hash))
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	store, err := credentials.Open(ctx, credentials.Options{
		Backend:        cfg.Store.Backend,
		DataDir:        cfg.DataDir,
		RedisURL:       cfg.Store.RedisURL,
		RedisKeyPrefix: cfg.Store.RedisKeyPrefix,
	})
	if err != nil {
		a.log.Error(ctx, "opening credential store failed", "backend", cfg.Store.Backend, "error", err)
		_ = a.Close()
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, store.Close)

	d := shell.NewExecDispatcher(cfg.Shell.Program, a.log)
	d.Stdin, d.Stdout, d.Stderr = commandStdin(in, a.reader), out, errOut

	a.registration = services.NewRegistrationService(store, hasher, a.log)
	a.auth = services.NewAuthenticationService(hasher)
	a.dispatcher = d

	a.log.Debug(ctx, "app initialised", "backend", store.Backend(), "algorithm", cfg.Hash.Algorithm)
	return a, nil
}

// commandStdin picks what dispatched commands read. Piped input goes through
// the prompt reader so lines it has already buffered are not skipped. A
// terminal is handed over directly.
func commandStdin(in io.Reader, buffered *bufio.Reader) io.Reader {
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		return f
	}
	return buffered
}

func (a *App) newLogger(errOut io.Writer) (logging.Logger, error) {
	if a.config.Log.File == "" {
		return logging.New(a.config.Log.Level, a.config.Log.Format, errOut), nil
	}
	f, err := os.OpenFile(a.config.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, f.Close)
	return logging.New(a.config.Log.Level, a.config.Log.Format, f), nil
}

func hasherOptions(h config.HashConfig) cryptox.Options {
	return cryptox.Options{
		Algorithm:       h.Algorithm,
		BcryptCost:      h.BcryptCost,
		Argon2Time:      h.Argon2Time,
		Argon2MemoryKiB: h.Argon2MemoryKiB,
		Argon2Threads:   h.Argon2Threads,
		SHA512Rounds:    h.SHA512Rounds,
	}
}

// Run drives the session gate and, once authorized, the shell loop.
// A lockout is returned as common.ErrLockedOut.
func (a *App) Run(ctx context.Context) error {
	gate := services.NewSessionGate(a.store, a.auth, a, a, a.announcer, a.log, services.GateOptions{
		MaxAttempts:  a.config.Auth.MaxAttempts,
		FailureDelay: a.config.Auth.FailureDelay,
	})

	outcome, err := gate.Authorize(ctx)
	if err != nil {
		if errors.Is(err, common.ErrStorage) {
			return &reportedError{err: err}
		}
		return err
	}

	if outcome.Kind == models.OutcomeLockedOut {
		return &reportedError{err: outcome.Err()}
	}

	return runShell(ctx, a, outcome.Identity, a.reader, a.out)
}

// Announce forwards to the console announcer.
func (a *App) Announce(msg string, sev services.Severity) {
	a.announcer.Announce(msg, sev)
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
