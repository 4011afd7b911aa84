// Package secretbox seals and opens opaque byte payloads for
// cookie-carried session state. A sealed blob is self-contained: the
// holder of the 32-byte key, and nobody else, can recover the payload
// or produce a blob that opens successfully.
//
// # Wire Format
//
// A sealed blob is laid out as
//
//	IV (16 bytes) || AES-256-CBC ciphertext (PKCS#7 padded) || HMAC-SHA-256 tag (32 bytes)
//
// where the tag covers IV || ciphertext and the ciphertext encrypts the
// gzip-compressed plaintext. Every valid blob is at least 48 bytes.
// This layout is the only bit-exact contract of the package; cookie
// encoding (base64 and friends) is the caller's concern, with
// [EncodeValue] and [DecodeValue] available as a convenience.
//
// # Security Model
//
// The construction is encrypt-then-MAC:
//
//   - Confidentiality: AES-256-CBC under a fresh random IV per seal.
//     An IV is never reused; reuse with CBC leaks plaintext structure.
//
//   - Integrity and authenticity: HMAC-SHA-256 over IV || ciphertext.
//     [Open] verifies the tag in constant time BEFORE any decryption,
//     so padding-oracle and malleability attacks get no foothold.
//
//   - Oracle resistance: every post-verification failure (padding,
//     compression) collapses to [ErrAlteredMessage]. A caller, or an
//     attacker watching one, cannot distinguish a bad MAC from bad
//     padding.
//
// Sealing an empty payload is rejected with [ErrEmptyMessage] rather
// than silently accepted; an empty cookie value is always a caller bug.
//
// # Key Management
//
// Use [GenerateKey] for a fresh random key, [ParseKey] to load one from
// configuration, and [DeriveKey] to derive independent per-purpose keys
// from a single master secret. Keep keys out of logs and version
// control; their storage lifetime is the caller's responsibility.
package secretbox
