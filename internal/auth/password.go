package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/cropportal/backend/internal/config"
)

// ErrInvalidHashFormat is returned when a stored hash cannot be parsed.
var ErrInvalidHashFormat = errors.New("invalid password hash format")

// PasswordHasher is the credential-hashing capability the credential store
// depends on. The store treats secrets as opaque and delegates hashing and
// verification here, so the scheme is swappable without touching callers.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// PasswordConfig holds the parameters for the Argon2id password hashing algorithm.
type PasswordConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultPasswordConfig returns the default configuration for password hashing.
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ConfigFromAppConfig creates a password config from the application config.
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	return &PasswordConfig{
		Memory:      cfg.PasswordHash.Memory,
		Iterations:  cfg.PasswordHash.Iterations,
		Parallelism: cfg.PasswordHash.Parallelism,
		SaltLength:  cfg.PasswordHash.SaltLength,
		KeyLength:   cfg.PasswordHash.KeyLength,
	}
}

// Argon2Hasher implements PasswordHasher using Argon2id. Hashes are stored
// in the standard encoded form, salt included, so a single column holds the
// whole credential.
type Argon2Hasher struct {
	cfg *PasswordConfig
}

// NewArgon2Hasher creates an Argon2Hasher with the given parameters.
func NewArgon2Hasher(cfg *PasswordConfig) *Argon2Hasher {
	if cfg == nil {
		cfg = DefaultPasswordConfig()
	}
	return &Argon2Hasher{cfg: cfg}
}

// Hash generates an encoded Argon2id hash of the provided password.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.cfg.Iterations,
		h.cfg.Memory,
		h.cfg.Parallelism,
		h.cfg.KeyLength,
	)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.cfg.Memory,
		h.cfg.Iterations,
		h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// Verify compares a password with an encoded hash using the parameters
// embedded in the hash. Uses constant-time comparison.
func (h *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHashFormat
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, ErrInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	comparisonHash := argon2.IDKey(
		[]byte(password),
		salt,
		iterations,
		memory,
		parallelism,
		uint32(len(hash)),
	)

	match := subtle.ConstantTimeCompare(hash, comparisonHash) == 1
	return match, nil
}
