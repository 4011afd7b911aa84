// Package crypto implements the low-level primitives behind the girder
// cookie cryptobox: AES-256-CBC with PKCS#7 padding, HMAC-SHA-256,
// gzip compression of plaintexts, constant-time comparison, and access
// to the operating system's secure random source.
//
// # Algorithm Suite
//
// The cryptobox is an encrypt-then-MAC construction:
//
//   - AES-256-CBC (PKCS#7 padded) encrypts the gzip-compressed plaintext
//     under a fresh random 16-byte IV.
//
//   - HMAC-SHA-256 authenticates IV || ciphertext under the same key,
//     producing a 32-byte tag appended to the blob.
//
//   - HKDF-SHA-256 (RFC 5869) derives independent per-purpose keys from
//     a single master secret.
//
// # Critical Security Notes
//
// The HMAC tag MUST be verified BEFORE any decryption is attempted, and
// the verification MUST use [ConstantTimeEqual]. Decrypting an
// unauthenticated CBC ciphertext exposes a padding oracle; comparing
// tags with a short-circuiting loop exposes a timing oracle. Callers in
// the secretbox package enforce both rules.
//
// CBC IVs MUST be unique per encryption under a given key. [RandomBytes]
// draws from crypto/rand; there is no deterministic fallback.
//
// This package is internal. The public API, including the error taxonomy
// presented to users, lives in the secretbox package.
package crypto
