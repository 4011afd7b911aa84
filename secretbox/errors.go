package secretbox

import (
	"errors"

	"github.com/girderhttp/girder/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyLength is returned when a key is not exactly
	// KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrEmptyMessage is returned when Seal is given an empty payload.
	ErrEmptyMessage = errors.New("empty message given")

	// ErrTruncatedMessage is returned when a blob is shorter than the
	// 48 bytes a valid IV and tag require.
	ErrTruncatedMessage = errors.New("truncated message")

	// ErrAlteredMessage is returned when a blob fails authentication or
	// any later stage of opening. Tampering, corruption, and use of the
	// wrong key are deliberately indistinguishable.
	ErrAlteredMessage = errors.New("altered or corrupt message")

	// ErrRandomUnavailable is returned when the OS secure random source
	// cannot supply fresh bytes. Fatal to sealing and key generation;
	// never substituted with a weaker source.
	ErrRandomUnavailable = crypto.ErrRandomUnavailable

	// ErrNotUTF8 is returned by OpenString when the opened payload is
	// not valid UTF-8.
	ErrNotUTF8 = errors.New("message is not valid UTF-8")
)
