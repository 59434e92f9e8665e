// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// PasswordParams are the argon2id cost settings new hashes are created with.
type PasswordParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

var DefaultPasswordParams = PasswordParams{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// PasswordHasher hashes and verifies argon2id passwords in the PHC string
// format. Hashes made with other parameters still verify and are flagged
// for upgrade.
type PasswordHasher struct {
	params    PasswordParams
	dummyOnce sync.Once
	dummyHash string
	dummyErr  error
}

func NewPasswordHasher(params PasswordParams) *PasswordHasher {
	return &PasswordHasher{params: params}
}

var defaultHasher = NewPasswordHasher(DefaultPasswordParams)

func DefaultHasher() *PasswordHasher {
	return defaultHasher
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	p := argonParams{
		memory:  h.params.Memory,
		time:    h.params.Time,
		threads: h.params.Threads,
		keyLen:  h.params.KeyLen,
	}

	return p.encode(salt, p.derive(password, salt)), nil
}

// Verify reports whether password matches encodedHash. On a match with
// outdated parameters it also returns a replacement hash; rehash failure is
// not an error.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, string, error) {
	params, salt, hash, err := decodeHash(encodedHash)
	if err != nil {
		return false, "", err
	}

	if subtle.ConstantTimeCompare(hash, params.derive(password, salt)) != 1 {
		return false, "", nil
	}

	if !h.isCurrent(params) {
		if newHash, hashErr := h.Hash(password); hashErr == nil {
			return true, newHash, nil
		}
	}

	return true, "", nil
}

// VerifyTimingSafe always runs one argon2 derivation, against a dummy hash
// when encodedHash is nil or empty, so a missing account costs the same as a
// wrong password. It never reports success for a missing hash.
func (h *PasswordHasher) VerifyTimingSafe(
	password string,
	encodedHash *string,
) (bool, string, error) {
	if encodedHash != nil && *encodedHash != "" {
		return h.Verify(password, *encodedHash)
	}

	dummy, err := h.dummy()
	if err != nil {
		return false, "", err
	}

	//nolint:errcheck // result discarded, only the cost matters
	_, _, _ = h.Verify(password, dummy)

	return false, "", nil
}

func (h *PasswordHasher) dummy() (string, error) {
	h.dummyOnce.Do(func() {
		h.dummyHash, h.dummyErr = h.Hash("dummy_password_for_timing_attack_prevention")
	})
	return h.dummyHash, h.dummyErr
}

func (h *PasswordHasher) isCurrent(p *argonParams) bool {
	return p.memory == h.params.Memory &&
		p.time == h.params.Time &&
		p.threads == h.params.Threads &&
		p.keyLen == h.params.KeyLen
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

func (p argonParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
}

func (p argonParams) encode(salt, hash []byte) string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory,
		p.time,
		p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func decodeHash(encodedHash string) (*argonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params := &argonParams{}
	_, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.memory,
		&params.time,
		&params.threads,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	//nolint:gosec // G115: argon2id key lengths are small
	params.keyLen = uint32(len(hash))

	return params, salt, hash, nil
}
