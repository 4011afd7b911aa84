package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Sum computes HMAC-SHA-256 over the concatenation of parts under key.
// Taking the parts separately lets callers authenticate IV || ciphertext
// without assembling an intermediate buffer.
func Sum(key []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, p := range parts {
		// hash.Hash writes never fail
		mac.Write(p)
	}
	return mac.Sum(nil)
}
