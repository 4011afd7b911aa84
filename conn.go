package girder

import (
	"net"
	"sync"
	"sync/atomic"
)

// Conn is the per-socket state: a transport, a dedicated line buffer
// for line-oriented scanning, and a FIFO queue of segments already read
// from the socket but not yet consumed by the parser (pipelined
// requests). One flow of control owns a Conn; receives and sends are
// strictly ordered as issued. Close may be called from another
// goroutine (e.g. a timeout controller) and interrupts in-flight I/O.
type Conn struct {
	tr   *Transport
	pool *Pool
	peer net.Addr

	closed atomic.Bool

	mu      sync.Mutex
	lineBuf *Buffer
	pending []Segment // FIFO pipeline lookahead
	held    []*Buffer // buffers backing past reads, released once drained
}

// NewConn binds an accepted transport to the pool, acquiring the
// connection's line buffer. Fails with ErrPoolExhausted when the pool
// cannot supply one; the accept loop decides whether to shed load.
func NewConn(tr *Transport, pool *Pool) (*Conn, error) {
	lineBuf, err := pool.Acquire()
	if err != nil {
		return nil, err
	}
	return &Conn{
		tr:      tr,
		pool:    pool,
		peer:    tr.RemoteAddr(),
		lineBuf: lineBuf,
	}, nil
}

// RemoteAddr returns the peer's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.peer
}

// Transport returns the connection's transport.
func (c *Conn) Transport() *Transport {
	return c.tr
}

// Pool returns the buffer pool the connection leases from, so response
// writers can acquire scratch buffers with the same lifecycle.
func (c *Conn) Pool() *Pool {
	return c.pool
}

// LineBuffer returns a segment spanning the connection's dedicated line
// buffer. Returns the zero segment once the connection is closed.
func (c *Conn) LineBuffer() Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lineBuf == nil {
		return Segment{}
	}
	seg, _ := c.lineBuf.Segment(0, c.lineBuf.Cap())
	return seg
}

// Receive returns the next unconsumed bytes. If the pending queue is
// non-empty its front segment is returned without touching the
// transport; otherwise a transport read is issued into a pool buffer
// until at least min bytes arrive (clamped to the buffer size). A
// zero-length segment with a nil error signals orderly peer shutdown.
//
// Buffers backing earlier reads are recycled once the pending queue has
// been drained and a new read is issued, so segments from a previous
// Receive must be consumed (or returned via Unread) before the next.
func (c *Conn) Receive(min int) (Segment, error) {
	if c.closed.Load() {
		return Segment{}, ErrConnClosed
	}

	c.mu.Lock()
	if len(c.pending) > 0 {
		seg := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		return seg, nil
	}
	// Queue drained: all prior read buffers are consumed.
	for _, b := range c.held {
		c.pool.Release(b)
	}
	c.held = c.held[:0]
	c.mu.Unlock()

	buf, err := c.pool.Acquire()
	if err != nil {
		return Segment{}, err
	}

	if min < 1 {
		min = 1
	}
	if min > buf.Cap() {
		min = buf.Cap()
	}

	total := 0
	for total < min {
		window, _ := buf.Segment(total, buf.Cap()-total)
		n, err := c.tr.Read(window)
		if err != nil {
			c.pool.Release(buf)
			return Segment{}, err
		}
		if n == 0 {
			break // orderly shutdown
		}
		total += n
	}

	if total == 0 {
		c.pool.Release(buf)
		return Segment{}, nil
	}

	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		c.pool.Release(buf)
		return Segment{}, ErrConnClosed
	}
	c.held = append(c.held, buf)
	c.mu.Unlock()

	return buf.Segment(0, total)
}

// Unread queues a segment to be returned by a later Receive before any
// new transport read, in FIFO order. The parser uses this to hand back
// the unconsumed tail of a read that held more than one request.
func (c *Conn) Unread(seg Segment) error {
	if c.closed.Load() {
		return ErrConnClosed
	}
	if seg.Len() == 0 {
		return nil
	}
	c.mu.Lock()
	c.pending = append(c.pending, seg)
	c.mu.Unlock()
	return nil
}

// Send writes the segment via the transport, retrying partial writes
// until every byte is out or the transport faults. Returns the number
// of bytes written; on error that count may be short.
func (c *Conn) Send(seg Segment) (int, error) {
	if c.closed.Load() {
		return 0, ErrConnClosed
	}

	written := 0
	rest := seg
	for rest.Len() > 0 {
		n, err := c.tr.Write(rest)
		written += n
		if err != nil {
			return written, err
		}
		_, rest, _ = rest.SplitAt(n)
	}
	return written, nil
}

// Close releases every buffer the connection holds back to the pool
// exactly once, then closes the transport. Safe to call repeatedly and
// during error unwind; in-flight receives and sends fail promptly once
// the socket is closed.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	// Close the socket first so a blocked read or write bails out.
	err := c.tr.Close()

	c.mu.Lock()
	if c.lineBuf != nil {
		c.pool.Release(c.lineBuf)
		c.lineBuf = nil
	}
	for _, b := range c.held {
		c.pool.Release(b)
	}
	c.held = nil
	c.pending = nil
	c.mu.Unlock()

	return err
}
