package crypto

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns 2*size hex characters from a cryptographically
// secure source.
func RandomHex(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
