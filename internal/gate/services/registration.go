package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
	"github.com/dmitrijs2005/cyphergate/internal/gate/repositories/credentials"
	"github.com/dmitrijs2005/cyphergate/internal/logging"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

type RegistrationService struct {
	store  credentials.Store
	hasher cryptox.Hasher
	log    logging.Logger
}

func NewRegistrationService(store credentials.Store, hasher cryptox.Hasher, log logging.Logger) *RegistrationService {
	return &RegistrationService{store: store, hasher: hasher, log: log}
}

// Register hashes the password and overwrites whatever record is stored.
// The username is stored verbatim. Empty or whitespace-only input yields a
// *ValidationError and the store is not touched; storage errors are returned
// unchanged.
func (s *RegistrationService) Register(ctx context.Context, username string, password []byte) (models.CredentialRecord, error) {
	if strings.TrimSpace(username) == "" {
		return models.CredentialRecord{}, &ValidationError{Field: FieldUsername, Reason: ReasonEmptyField}
	}
	if len(bytes.TrimSpace(password)) == 0 {
		return models.CredentialRecord{}, &ValidationError{Field: FieldPassword, Reason: ReasonEmptyField}
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return models.CredentialRecord{}, &ValidationError{Field: FieldPassword, Reason: ReasonTooLong}
		}
		return models.CredentialRecord{}, fmt.Errorf("hash password: %w", err)
	}

	rec := models.CredentialRecord{Username: username, PasswordHash: digest}
	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Error(ctx, "saving credentials failed", "backend", s.store.Backend(), "error", err)
		return models.CredentialRecord{}, err
	}

	s.log.Info(ctx, "credentials registered", "backend", s.store.Backend(), "algorithm", cryptox.Identify(digest))
	return rec, nil
}
