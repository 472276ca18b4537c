package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// ResetTokenBytes is the entropy of a password reset token.
const ResetTokenBytes = 32

// HashResetToken generates a SHA256 hash of a password reset token.
// Only the hash is stored; the raw token travels in the e-mailed link.
func HashResetToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareResetTokenHash compares a raw reset token with its stored SHA256 hash.
func CompareResetTokenHash(token string, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashResetToken(token)), []byte(storedHash)) == 1
}
