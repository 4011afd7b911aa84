package girder

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrPoolExhausted is returned when the buffer pool is at its
	// configured maximum and no free buffer is available. Recoverable:
	// the caller should back off or shed the connection.
	ErrPoolExhausted = errors.New("buffer pool exhausted")

	// ErrConnClosed is returned when an operation is attempted on a
	// closed connection.
	ErrConnClosed = errors.New("connection is closed")

	// ErrConnectionReset is matched by transport faults caused by the
	// peer resetting the connection.
	ErrConnectionReset = errors.New("connection reset by peer")

	// ErrTimeout is matched by transport faults caused by an I/O
	// deadline set by the caller expiring.
	ErrTimeout = errors.New("i/o timeout")

	// ErrTLSHandshake is matched by transport faults from a failed TLS
	// handshake.
	ErrTLSHandshake = errors.New("tls handshake failed")
)

// TransportError is the connection-level fault surfaced when a
// transport read or write fails. Kind, when set, is one of the
// transport sentinel errors above, so errors.Is works against both the
// sentinel and the underlying cause.
type TransportError struct {
	Op   string // "read", "write", or "handshake"
	Kind error  // classifying sentinel, nil when unclassified
	Err  error  // underlying cause
}

func (e *TransportError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("transport %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *TransportError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}
