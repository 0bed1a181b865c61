package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// ==================== ONE-TIME TOKENS ====================

// GenerateURLToken returns a random hex token for email links.
func GenerateURLToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken is the form one-time tokens are stored and looked up in.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
