package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	DefaultArgon2Time      = 1
	DefaultArgon2MemoryKiB = 64 * 1024
	DefaultArgon2Threads   = 4

	// Upper bounds accepted both when hashing and when parsing a digest.
	MaxArgon2Time      = 64
	MaxArgon2MemoryKiB = 4 * 1024 * 1024
)

const (
	argon2Prefix  = "$argon2id$"
	argon2KeyLen  = 32
	argon2SaltLen = 16

	maxArgon2KeyLen = 128
)

// Argon2Hasher hashes passwords with argon2id and encodes the result as a
// PHC string.
type Argon2Hasher struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

func NewArgon2Hasher(time, memoryKiB uint32, threads uint8) *Argon2Hasher {
	if time == 0 {
		time = DefaultArgon2Time
	}
	time = min(time, MaxArgon2Time)
	if memoryKiB == 0 {
		memoryKiB = DefaultArgon2MemoryKiB
	}
	memoryKiB = min(memoryKiB, MaxArgon2MemoryKiB)
	if threads == 0 {
		threads = DefaultArgon2Threads
	}
	return &Argon2Hasher{Time: time, MemoryKiB: memoryKiB, Threads: threads}
}

func (h *Argon2Hasher) Hash(password []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(argon2SaltLen)
	key := argon2.IDKey(password, salt, h.Time, h.MemoryKiB, h.Threads, argon2KeyLen)

	enc := base64.RawStdEncoding
	digest := fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, h.MemoryKiB, h.Time, h.Threads,
		enc.EncodeToString(salt), enc.EncodeToString(key))
	return []byte(digest), nil
}

// Verify re-derives the key with the parameters embedded in digest.
func (h *Argon2Hasher) Verify(password, digest []byte) bool {
	p, ok := parseArgon2(string(digest))
	if !ok {
		return false
	}
	candidate := argon2.IDKey(password, p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(candidate, p.key) == 1
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// parseArgon2 splits "$argon2id$v=19$m=..,t=..,p=..$salt$key".
func parseArgon2(s string) (argon2Params, bool) {
	var p argon2Params

	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, false
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &threads); err != nil {
		return p, false
	}
	if p.memory == 0 || p.memory > MaxArgon2MemoryKiB || p.time == 0 || p.time > MaxArgon2Time || threads == 0 || threads > 255 {
		return p, false
	}
	p.threads = uint8(threads)

	var err error
	enc := base64.RawStdEncoding
	if p.salt, err = enc.DecodeString(parts[4]); err != nil || len(p.salt) == 0 {
		return p, false
	}
	if p.key, err = enc.DecodeString(parts[5]); err != nil || len(p.key) == 0 || len(p.key) > maxArgon2KeyLen {
		return p, false
	}
	return p, true
}
