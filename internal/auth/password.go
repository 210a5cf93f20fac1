package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"golang.org/x/crypto/argon2"
)

// PasswordParams are the Argon2id cost parameters. Memory is in KiB.
type PasswordParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultPasswordParams matches the OWASP minimum for Argon2id.
var DefaultPasswordParams = PasswordParams{
	Memory:  19 * 1024,
	Time:    2,
	Threads: 1,
	SaltLen: 16,
	KeyLen:  32,
}

// PasswordHasher hashes and verifies passwords with Argon2id keyed by a
// process-wide secret. The password is first peppered with
// HMAC-SHA256(secret, password), so a leaked hash table cannot be attacked
// without the secret.
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>
type PasswordHasher struct {
	secret []byte
	params PasswordParams
	rand   io.Reader
}

// PasswordHasherOption customizes a [PasswordHasher].
type PasswordHasherOption func(*PasswordHasher)

// WithPasswordParams overrides the Argon2id cost parameters used for new hashes.
func WithPasswordParams(p PasswordParams) PasswordHasherOption {
	return func(h *PasswordHasher) {
		h.params = p
	}
}

// WithRandom overrides the salt source.
func WithRandom(r io.Reader) PasswordHasherOption {
	return func(h *PasswordHasher) {
		h.rand = r
	}
}

func NewPasswordHasher(secret string, opts ...PasswordHasherOption) *PasswordHasher {
	h := &PasswordHasher{
		secret: []byte(secret),
		params: DefaultPasswordParams,
		rand:   rand.Reader,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash derives a new credential for password with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(h.secret) == 0 {
		return "", fmt.Errorf("%w: password hash key is not set", ErrConfiguration)
	}

	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := h.derive(password, salt, h.params)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. A mismatch is (false, nil).
// The parameters stored in encoded are used, not the hasher's current ones.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	if len(h.secret) == 0 {
		return false, fmt.Errorf("%w: password hash key is not set", ErrConfiguration)
	}

	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := h.derive(password, salt, params)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func (h *PasswordHasher) derive(password string, salt []byte, p PasswordParams) []byte {
	peppered := utils.HMACSHA256([]byte(password), h.secret)
	return argon2.IDKey(peppered, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

func decodeHash(encoded string) (PasswordParams, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return PasswordParams{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return PasswordParams{}, nil, nil, ErrMalformedHash
	}

	var p PasswordParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return PasswordParams{}, nil, nil, ErrMalformedHash
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return PasswordParams{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return PasswordParams{}, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return PasswordParams{}, nil, nil, ErrMalformedHash
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}
