package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// shareTokenBytes is the entropy of a share token. 16 bytes hex-encode to a
// 32-character URL path segment.
const shareTokenBytes = 16

// newShareToken generates a cryptographically random share token.
func newShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
