package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// NewSalt generates a fresh random salt for token hashing.
// The salt is returned as a base64url-encoded string (no padding) so it can
// be stored alongside the hash in a text column.
func NewSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(salt), nil
}

// HashTokenSecret derives an Argon2id hash of a token secret under the given
// salt and the process pepper. Salt must be the base64url form produced by
// NewSalt; the hash is returned base64url-encoded.
//
// The raw secret is never stored. Persist only the (salt, hash) pair and
// recompute on verification.
func HashTokenSecret(secret, b64Salt string) (string, error) {
	salt, err := base64.RawURLEncoding.DecodeString(b64Salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt encoding: %w", err)
	}
	hash := argon2.IDKey(
		[]byte(secret+GetPepper()),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)
	return base64.RawURLEncoding.EncodeToString(hash), nil
}

// VerifyTokenSecret recomputes the Argon2id hash of secret under b64Salt and
// compares it against b64Hash in constant time.
//
// The full key derivation always runs, even when the stored salt or hash is
// malformed, so a rejected secret costs the same as an accepted one. Callers
// that need an equal-cost miss path for unknown tokens should verify against
// a decoy (salt, hash) pair.
func VerifyTokenSecret(secret, b64Salt, b64Hash string) bool {
	salt, saltErr := base64.RawURLEncoding.DecodeString(b64Salt)
	expected, hashErr := base64.RawURLEncoding.DecodeString(b64Hash)

	if saltErr != nil || len(salt) == 0 {
		salt = make([]byte, saltLength)
	}
	keyLen := uint32(keyLength)
	if hashErr == nil && len(expected) > 0 {
		keyLen = uint32(len(expected)) // #nosec G115 - decoded hash length is bounded
	}

	computed := argon2.IDKey(
		[]byte(secret+GetPepper()),
		salt,
		iterations,
		memory,
		parallelism,
		keyLen,
	)

	if saltErr != nil || hashErr != nil {
		return false
	}
	return subtle.ConstantTimeCompare(computed, expected) == 1
}
