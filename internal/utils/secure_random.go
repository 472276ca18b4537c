package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureRandomString returns n random bytes from crypto/rand, hex encoded (2n characters).
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("random string length must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
