package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken hashes a refresh token for storage. SHA-256 is enough
// here: the token is high-entropy random data, not a user-chosen password.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
