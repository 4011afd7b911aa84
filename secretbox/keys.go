package secretbox

import (
	"fmt"

	"github.com/girderhttp/girder/internal/crypto"
)

// GenerateKey returns a fresh random 32-byte key suitable for Seal and
// Open.
func GenerateKey() ([]byte, error) {
	return RandomBytes(KeySize)
}

// GenerateIV returns a fresh random 16-byte CBC initialization vector.
// Seal draws its own IVs; this is exposed for callers with external
// IV-provisioning needs.
func GenerateIV() ([]byte, error) {
	return RandomBytes(IVSize)
}

// RandomBytes fills n bytes from the OS-backed cryptographically secure
// random source. Failure matches ErrRandomUnavailable.
func RandomBytes(n int) ([]byte, error) {
	return crypto.RandomBytes(n)
}

// HMAC computes a 32-byte HMAC-SHA-256 tag over data under key. Exposed
// for integrity-tagging needs outside the sealed-blob format; Seal and
// Open use the same primitive internally.
func HMAC(key, data []byte) []byte {
	return crypto.Sum(key, data)
}

// ParseKey decodes a URL-safe base64 key (as stored in configuration)
// and validates its length.
func ParseKey(encoded string) ([]byte, error) {
	key, err := DecodeValue(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}
	return key, nil
}

// DeriveKey derives a Seal/Open key from a master secret using
// HKDF-SHA-256. Distinct info strings yield independent keys, so one
// master secret can serve several cookie purposes without key reuse.
func DeriveKey(secret, salt []byte, info string) ([]byte, error) {
	return crypto.DeriveKey(secret, salt, []byte(info), KeySize)
}
