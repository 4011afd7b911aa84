package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for key and IV generation.
// It defaults to crypto/rand.Reader and can be overridden for testing.
var randReader io.Reader = rand.Reader

// RandomBytes fills n bytes from the OS-backed secure random source.
// A short or failed read is reported as ErrRandomUnavailable; there is
// no non-cryptographic fallback.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}
	return buf, nil
}
