package secretbox

import (
	"fmt"
	"unicode/utf8"

	"github.com/girderhttp/girder/internal/crypto"
)

const (
	// KeySize is the required key length in bytes (AES-256, HMAC-SHA-256).
	KeySize = crypto.KeySize
	// IVSize is the length of the IV prefixing every sealed blob.
	IVSize = crypto.IVSize
	// TagSize is the length of the HMAC tag trailing every sealed blob.
	TagSize = crypto.TagSize
	// MinSealedSize is the smallest length a well-formed blob can have.
	MinSealedSize = crypto.MinBlobSize
)

// Seal encrypts and authenticates plaintext under key, returning a
// blob laid out as IV || ciphertext || tag (see the package doc for the
// exact format). The plaintext is gzip-compressed before encryption and
// a fresh random IV is drawn for every call.
func Seal(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}
	if len(plaintext) == 0 {
		return nil, ErrEmptyMessage
	}

	iv, err := crypto.RandomBytes(IVSize)
	if err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	packed, err := crypto.Compress(plaintext)
	if err != nil {
		return nil, fmt.Errorf("compress plaintext: %w", err)
	}

	ciphertext, err := crypto.EncryptCBC(key, iv, packed)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	tag := crypto.Sum(key, iv, ciphertext)

	blob := make([]byte, 0, len(iv)+len(ciphertext)+len(tag))
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)
	blob = append(blob, tag...)
	return blob, nil
}

// SealString seals a string payload. See Seal.
func SealString(key []byte, plaintext string) ([]byte, error) {
	return Seal(key, []byte(plaintext))
}

// Open authenticates and decrypts a blob produced by Seal, returning
// the original payload bytes.
//
// The HMAC tag is verified, in constant time, before any decryption is
// attempted. All failures after that point report ErrAlteredMessage
// without further detail, so nothing about padding or compression state
// leaks to an attacker probing with forged blobs.
func Open(key, blob []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}
	if len(blob) < MinSealedSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrTruncatedMessage, len(blob), MinSealedSize)
	}

	body := blob[:len(blob)-TagSize]
	tag := blob[len(blob)-TagSize:]
	if !crypto.ConstantTimeEqual(crypto.Sum(key, body), tag) {
		return nil, ErrAlteredMessage
	}

	iv := blob[:IVSize]
	ciphertext := blob[IVSize : len(blob)-TagSize]

	packed, err := crypto.DecryptCBC(key, iv, ciphertext)
	if err != nil {
		return nil, ErrAlteredMessage
	}

	plaintext, err := crypto.Decompress(packed)
	if err != nil {
		return nil, ErrAlteredMessage
	}
	return plaintext, nil
}

// OpenString opens a blob and returns the payload as a string, failing
// with ErrNotUTF8 if the payload is not valid UTF-8.
func OpenString(key, blob []byte) (string, error) {
	plaintext, err := Open(key, blob)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrNotUTF8
	}
	return string(plaintext), nil
}
