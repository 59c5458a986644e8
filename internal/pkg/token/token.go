package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New generates a cryptographically random 64-character hex token
// (256 bits of entropy, URL-safe).
func New() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
