package cryptox

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; production defaults are exercised
// by TestNewHasher_Defaults only through construction.
func fastHashers() map[string]Hasher {
	return map[string]Hasher{
		AlgBcrypt:      NewBcryptHasher(4),
		AlgArgon2id:    NewArgon2Hasher(1, 1024, 1),
		AlgSHA512Crypt: NewSHA512CryptHasher(1000),
	}
}

func TestHashers_RoundTripAndNonDeterminism(t *testing.T) {
	for name, h := range fastHashers() {
		t.Run(name, func(t *testing.T) {
			pw := []byte("s3cret!")

			d1, err := h.Hash(pw)
			require.NoError(t, err)
			d2, err := h.Hash(pw)
			require.NoError(t, err)

			assert.NotEqual(t, d1, d2, "fresh salt per call must change the digest")
			assert.True(t, h.Verify(pw, d1))
			assert.True(t, h.Verify(pw, d2))
			assert.Equal(t, name, Identify(d1))
		})
	}
}

func TestHashers_WrongPassword(t *testing.T) {
	for name, h := range fastHashers() {
		t.Run(name, func(t *testing.T) {
			d, err := h.Hash([]byte("correct"))
			require.NoError(t, err)
			assert.False(t, h.Verify([]byte("wrong"), d))
			assert.False(t, h.Verify([]byte(""), d))
		})
	}
}

func TestHashers_MalformedDigestIsFalse(t *testing.T) {
	malformed := [][]byte{
		nil,
		{},
		[]byte("plaintext"),
		[]byte("$2a$"),
		[]byte("$2a$10$short"),
		[]byte("$argon2id$v=19$m=0,t=1,p=1$AAAA$AAAA"),
		[]byte("$argon2id$v=18$m=1024,t=1,p=1$AAAA$AAAA"),
		[]byte("$argon2id$v=19$m=1024,t=1,p=1$!!!$AAAA"),
		[]byte("$argon2id$v=19$garbage"),
		[]byte("$6$"),
		[]byte("$6$rounds=abc$salt$hash"),
		{0xff, 0x00, 0x24, 0x36, 0x24},
	}
	for name, h := range fastHashers() {
		for _, d := range malformed {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify([]byte("x"), d), "%s must reject %q", name, d)
			})
		}
	}
}

func TestArgon2_OutOfRangeParametersRejected(t *testing.T) {
	h := NewArgon2Hasher(1, 1024, 1)
	key := base64.RawStdEncoding.EncodeToString(make([]byte, maxArgon2KeyLen+1))

	for _, d := range []string{
		"$argon2id$v=19$m=1024,t=4294967295,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAA",
		"$argon2id$v=19$m=1024,t=65,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAA",
		"$argon2id$v=19$m=4294967295,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAA",
		"$argon2id$v=19$m=1024,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$" + key,
	} {
		assert.False(t, h.Verify([]byte("x"), []byte(d)), "must reject %s", d)
	}
}

func TestArgon2_ParametersClampedToVerifiableRange(t *testing.T) {
	h := NewArgon2Hasher(1000, 1024, 1)
	assert.Equal(t, uint32(MaxArgon2Time), h.Time)
}

func TestBcrypt_PasswordTooLong(t *testing.T) {
	h := NewBcryptHasher(4)
	_, err := h.Hash(bytes.Repeat([]byte("a"), 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestBcrypt_CostClamping(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, 4, NewBcryptHasher(1).Cost)
	assert.Equal(t, 31, NewBcryptHasher(99).Cost)
	assert.Equal(t, 10, NewBcryptHasher(10).Cost)
}

func TestBcrypt_DigestEmbedsCost(t *testing.T) {
	d, err := NewBcryptHasher(5).Hash([]byte("pw"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(d), "$2a$05$"), "got %s", d)
}

func TestArgon2_DigestFormat(t *testing.T) {
	d, err := NewArgon2Hasher(2, 2048, 1).Hash([]byte("pw"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(d), "$argon2id$v=19$m=2048,t=2,p=1$"), "got %s", d)

	// verification reads parameters from the digest, not from the receiver
	assert.True(t, NewArgon2Hasher(0, 0, 0).Verify([]byte("pw"), d))
}

func TestSHA512Crypt_DigestFormat(t *testing.T) {
	d, err := NewSHA512CryptHasher(1000).Hash([]byte("pw"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(d), "$6$rounds=1000$"), "got %s", d)
}

func TestSHA512Crypt_RoundsClamping(t *testing.T) {
	assert.Equal(t, DefaultSHA512Rounds, NewSHA512CryptHasher(0).Rounds)
	assert.Equal(t, 1000, NewSHA512CryptHasher(10).Rounds)
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		digest string
		want   string
	}{
		{"$2a$12$abc", AlgBcrypt},
		{"$2b$12$abc", AlgBcrypt},
		{"$2y$12$abc", AlgBcrypt},
		{"$argon2id$v=19$m=1,t=1,p=1$a$b", AlgArgon2id},
		{"$6$rounds=5000$salt$hash", AlgSHA512Crypt},
		{"$1$md5$hash", AlgUnknown},
		{"", AlgUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Identify([]byte(tt.digest)), tt.digest)
	}
}

func TestNewHasher_UnknownAlgorithm(t *testing.T) {
	_, err := NewHasher(Options{Algorithm: "md5"})
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestNewHasher_Defaults(t *testing.T) {
	m, err := NewHasher(Options{})
	require.NoError(t, err)
	b, ok := m.Primary.(*BcryptHasher)
	require.True(t, ok, "bcrypt must be the default primary")
	assert.Equal(t, DefaultBcryptCost, b.Cost)
}

func TestMultiHasher_VerifiesEveryFormat(t *testing.T) {
	m, err := NewHasher(Options{Algorithm: AlgBcrypt, BcryptCost: 4})
	require.NoError(t, err)

	pw := []byte("switch-me")
	for name, h := range fastHashers() {
		d, err := h.Hash(pw)
		require.NoError(t, err)
		assert.True(t, m.Verify(pw, d), "multi hasher must verify %s digests", name)
		assert.False(t, m.Verify([]byte("nope"), d))
	}
}

func TestMultiHasher_HashesWithPrimary(t *testing.T) {
	m, err := NewHasher(Options{Algorithm: AlgSHA512Crypt, SHA512Rounds: 1000})
	require.NoError(t, err)

	d, err := m.Hash([]byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, AlgSHA512Crypt, Identify(d))
	assert.False(t, m.Verify([]byte("pw"), []byte("$1$unsupported")))
}
