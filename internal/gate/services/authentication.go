package services

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
)

type AuthenticationService struct {
	hasher cryptox.Hasher
}

func NewAuthenticationService(hasher cryptox.Hasher) *AuthenticationService {
	return &AuthenticationService{hasher: hasher}
}

// Authenticate checks an entered pair against record. The username must
// match exactly (case-sensitive, no normalization) and the password must verify against the
// stored digest. The digest is verified even when the username differs so
// both failure kinds cost the same time and look the same to the caller.
func (s *AuthenticationService) Authenticate(enteredUsername string, enteredPassword []byte, record models.CredentialRecord) models.Outcome {
	userOK := subtle.ConstantTimeCompare([]byte(enteredUsername), []byte(record.Username)) == 1
	passOK := s.hasher.Verify(enteredPassword, record.PasswordHash)

	if userOK && passOK && record.Username != "" {
		return models.Authorized(record.Username)
	}
	return models.Rejected()
}
