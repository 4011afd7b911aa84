package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when the key is not KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidIVSize is returned when the IV is not IVSize bytes.
	ErrInvalidIVSize = errors.New("invalid IV size")

	// ErrNotBlockAligned is returned when a CBC ciphertext length is
	// zero or not a multiple of the AES block size.
	ErrNotBlockAligned = errors.New("ciphertext not block aligned")

	// ErrBadPadding is returned when PKCS#7 padding is malformed after
	// decryption. Callers collapse this with other post-MAC failures so
	// padding state is never externally observable.
	ErrBadPadding = errors.New("bad padding")

	// ErrCorruptStream is returned when the decrypted bytes are not a
	// valid compressed stream.
	ErrCorruptStream = errors.New("corrupt compressed stream")

	// ErrRandomUnavailable is returned when the OS random source cannot
	// satisfy a read. Effectively unreachable on supported platforms,
	// but reported rather than papered over.
	ErrRandomUnavailable = errors.New("secure random source unavailable")
)
