package cryptox

import (
	"bytes"
	"errors"
	"fmt"
)

// Algorithm names accepted by NewHasher.
const (
	AlgBcrypt      = "bcrypt"
	AlgArgon2id    = "argon2id"
	AlgSHA512Crypt = "sha512-crypt"
	AlgUnknown     = "unknown"
)

var (
	ErrPasswordTooLong      = errors.New("password is too long")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
)

// Hasher turns a plaintext password into an opaque, salted digest and checks
// passwords against such digests.
type Hasher interface {
	// Hash returns a fresh digest; two calls with the same password yield
	// different digests because each call draws a new salt.
	Hash(password []byte) ([]byte, error)

	// Verify reports whether password reproduces digest. It returns false for
	// malformed digests instead of an error.
	Verify(password, digest []byte) bool
}

// Options selects and tunes the primary algorithm. Zero values mean defaults.
type Options struct {
	Algorithm string

	BcryptCost int

	Argon2Time      uint32
	Argon2MemoryKiB uint32
	Argon2Threads   uint8

	SHA512Rounds int
}

// Identify returns the algorithm name encoded in digest's prefix.
func Identify(digest []byte) string {
	switch {
	case bytes.HasPrefix(digest, []byte("$2a$")),
		bytes.HasPrefix(digest, []byte("$2b$")),
		bytes.HasPrefix(digest, []byte("$2y$")):
		return AlgBcrypt
	case bytes.HasPrefix(digest, []byte(argon2Prefix)):
		return AlgArgon2id
	case bytes.HasPrefix(digest, []byte(sha512CryptPrefix)):
		return AlgSHA512Crypt
	default:
		return AlgUnknown
	}
}

// MultiHasher hashes with Primary and dispatches Verify on the digest prefix.
type MultiHasher struct {
	Primary   Hasher
	verifiers map[string]Hasher
}

// NewHasher builds a MultiHasher whose primary algorithm is opts.Algorithm
// (bcrypt when empty). Verifiers for the other formats use default
// parameters since verification reads parameters from the digest itself.
func NewHasher(opts Options) (*MultiHasher, error) {
	m := &MultiHasher{
		verifiers: map[string]Hasher{
			AlgBcrypt:      NewBcryptHasher(opts.BcryptCost),
			AlgArgon2id:    NewArgon2Hasher(opts.Argon2Time, opts.Argon2MemoryKiB, opts.Argon2Threads),
			AlgSHA512Crypt: NewSHA512CryptHasher(opts.SHA512Rounds),
		},
	}

	alg := opts.Algorithm
	if alg == "" {
		alg = AlgBcrypt
	}
	primary, ok := m.verifiers[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, opts.Algorithm)
	}
	m.Primary = primary
	return m, nil
}

func (m *MultiHasher) Hash(password []byte) ([]byte, error) {
	return m.Primary.Hash(password)
}

func (m *MultiHasher) Verify(password, digest []byte) bool {
	h, ok := m.verifiers[Identify(digest)]
	if !ok {
		return false
	}
	return h.Verify(password, digest)
}
