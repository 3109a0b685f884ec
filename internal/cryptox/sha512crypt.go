package cryptox

import (
	"fmt"

	"github.com/GehirnInc/crypt/sha512_crypt"
	"github.com/dmitrijs2005/cyphergate/internal/common"
)

const (
	sha512CryptPrefix = "$6$"

	DefaultSHA512Rounds = 656000
	minSHA512Rounds     = 1000
	maxSHA512Rounds     = 999999999

	cryptAlphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	cryptSaltLen  = 16
)

// SHA512CryptHasher produces glibc-compatible "$6$" digests, the format
// found in /etc/shadow.
type SHA512CryptHasher struct {
	Rounds int
}

func NewSHA512CryptHasher(rounds int) *SHA512CryptHasher {
	if rounds <= 0 {
		rounds = DefaultSHA512Rounds
	}
	if rounds < minSHA512Rounds {
		rounds = minSHA512Rounds
	}
	if rounds > maxSHA512Rounds {
		rounds = maxSHA512Rounds
	}
	return &SHA512CryptHasher{Rounds: rounds}
}

func (h *SHA512CryptHasher) Hash(password []byte) ([]byte, error) {
	salt := fmt.Sprintf("%srounds=%d$%s", sha512CryptPrefix, h.Rounds, cryptSalt())
	digest, err := sha512_crypt.New().Generate(password, []byte(salt))
	if err != nil {
		return nil, err
	}
	return []byte(digest), nil
}

func (h *SHA512CryptHasher) Verify(password, digest []byte) (ok bool) {
	// the crypt decoder is not hardened against every malformed input
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return sha512_crypt.New().Verify(string(digest), password) == nil
}

func cryptSalt() string {
	raw := common.GenerateRandByteArray(cryptSaltLen)
	out := make([]byte, cryptSaltLen)
	for i, b := range raw {
		out[i] = cryptAlphabet[int(b)%len(cryptAlphabet)]
	}
	return string(out)
}
