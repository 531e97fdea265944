package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches a password with argon2id. The parameters follow the
// RFC 9106 low-memory recommendation.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes the derived key once more; only the verifier is
// stored server-side, never the key itself.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}
