package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is a reasonable cost for an interactive login.
const DefaultBcryptCost = 12

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a BcryptHasher with cost clamped to bcrypt's
// accepted range; zero or negative cost selects DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password []byte) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}
	return digest, nil
}

// Verify compares in constant time via bcrypt.CompareHashAndPassword.
func (h *BcryptHasher) Verify(password, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, password) == nil
}
