// Package girder is the socket core of a web server toolkit: a
// pooled-buffer transport layer that moves bytes between TCP
// connections and request/response parsers without per-request heap
// churn. Its sibling package secretbox supplies the authenticated
// encryption used to protect cookie-carried session state.
//
// # Architecture
//
// Four pieces cooperate per accepted socket:
//
//   - [Pool]: a fixed-capacity pool of reusable byte buffers shared by
//     every connection. Acquire fails with [ErrPoolExhausted] at
//     capacity; the accept loop sheds load instead of queueing.
//
//   - [Segment]: a non-owning (buffer, offset, length) view used
//     wherever bytes change hands without copying. Segments detect a
//     released backing buffer and fail fast rather than dangle.
//
//   - [Transport]: a closed two-variant abstraction (plain TCP or TLS)
//     exposing single-attempt reads and writes over segments. Faults
//     classify into [ErrConnectionReset], [ErrTimeout], and
//     [ErrTLSHandshake] via errors.Is.
//
//   - [Conn]: the per-socket state. Receive drains the FIFO queue of
//     already-read segments (pipelined requests) before touching the
//     transport; Send retries partial writes to completion; Close
//     returns every held buffer to the pool exactly once.
//
// # Concurrency
//
// One goroutine owns one connection; a connection's receives and sends
// are never interleaved with themselves. The pool serializes
// acquire/release internally. Close is safe from another goroutine and
// interrupts in-flight I/O promptly, which is how callers implement
// deadlines: race the operation against a timer and close on expiry.
// No timeout policy lives in this layer.
//
// # What this package is not
//
// HTTP parsing, routing, and cookie/session orchestration are distinct
// layers built on top. The parser consumes [Conn.Receive] and
// [Conn.Send]; session management consumes the secretbox package.
package girder
