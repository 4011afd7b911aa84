package girder

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"syscall"
	"time"
)

// TransportKind distinguishes the two transport variants. The set is
// closed: connection logic switches over it exhaustively rather than
// dispatching through an open interface.
type TransportKind uint8

const (
	// TransportPlain is a cleartext TCP socket.
	TransportPlain TransportKind = iota
	// TransportTLS is a socket wrapped in a server-side TLS session.
	TransportTLS
)

func (k TransportKind) String() string {
	switch k {
	case TransportPlain:
		return "plain"
	case TransportTLS:
		return "tls"
	default:
		return "unknown"
	}
}

// Transport moves bytes between a socket and pool-backed segments. It
// exposes exactly one read and one write operation; each call is a
// single attempt against the underlying channel. A zero-byte read
// signals orderly peer shutdown, not an error.
type Transport struct {
	kind TransportKind
	conn net.Conn
}

// NewTransport wraps an accepted socket in a plaintext transport.
func NewTransport(conn net.Conn) *Transport {
	return &Transport{kind: TransportPlain, conn: conn}
}

// NewTLSTransport wraps an accepted socket in a server-side TLS session
// and runs the handshake. A handshake failure is reported as a
// transport fault matching ErrTLSHandshake.
func NewTLSTransport(conn net.Conn, cfg *tls.Config) (*Transport, error) {
	tlsConn := tls.Server(conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		return nil, &TransportError{Op: "handshake", Kind: ErrTLSHandshake, Err: err}
	}
	return &Transport{kind: TransportTLS, conn: tlsConn}, nil
}

// Kind returns the transport variant.
func (t *Transport) Kind() TransportKind {
	return t.kind
}

// RemoteAddr returns the peer's address.
func (t *Transport) RemoteAddr() net.Addr {
	return t.conn.RemoteAddr()
}

// SetDeadline sets the read and write deadline on the underlying
// socket. Deadline policy belongs to the caller; expiry surfaces from
// Read and Write as a fault matching ErrTimeout.
func (t *Transport) SetDeadline(d time.Time) error {
	return t.conn.SetDeadline(d)
}

// Read fills the segment from the socket, returning the number of
// bytes transferred. Zero bytes with a nil error means the peer shut
// down cleanly.
func (t *Transport) Read(seg Segment) (int, error) {
	n, err := t.conn.Read(seg.Bytes())
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		return n, t.fault("read", err)
	}
	return n, nil
}

// Write pushes the segment's bytes to the socket in a single attempt,
// returning the number of bytes transferred. Completing a partial write
// is the connection's job, not the transport's.
func (t *Transport) Write(seg Segment) (int, error) {
	n, err := t.conn.Write(seg.Bytes())
	if err != nil {
		return n, t.fault("write", err)
	}
	return n, nil
}

// Close closes the underlying socket. Any in-flight read or write on
// another goroutine fails promptly once the socket is closed.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// fault classifies an I/O error into the transport taxonomy.
func (t *Transport) fault(op string, err error) error {
	var kind error
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = ErrTimeout
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		kind = ErrConnectionReset
	case t.kind == TransportTLS && isTLSFault(err):
		kind = ErrTLSHandshake
	}
	return &TransportError{Op: op, Kind: kind, Err: err}
}

func isTLSFault(err error) bool {
	var recordErr tls.RecordHeaderError
	return errors.As(err, &recordErr)
}
