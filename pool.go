package girder

import (
	"fmt"
	"sync"
)

// Buffer is a fixed-size block of bytes owned by a Pool. While leased
// it belongs to exactly one connection; once released it must not be
// touched again. Contents are zeroed on release, so a reused buffer
// never carries another connection's bytes.
type Buffer struct {
	pool   *Pool
	data   []byte
	gen    uint64 // bumped on release so stale segments are detectable
	leased bool
}

// Cap returns the buffer's fixed capacity in bytes.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Pool is a fixed-capacity pool of reusable buffers shared by all
// connections of a server. Acquire and release are O(1) under a single
// mutex.
type Pool struct {
	mu        sync.Mutex
	size      int // bytes per buffer
	max       int // maximum buffers ever in circulation
	free      []*Buffer
	allocated int // buffers created so far, free or leased
}

// NewPool creates a pool of maxBuffers buffers of bufferSize bytes
// each. Buffers are allocated lazily as connections need them.
func NewPool(bufferSize, maxBuffers int) *Pool {
	if bufferSize <= 0 {
		panic("girder: pool buffer size must be positive")
	}
	if maxBuffers <= 0 {
		panic("girder: pool maximum must be positive")
	}
	return &Pool{
		size: bufferSize,
		max:  maxBuffers,
		free: make([]*Buffer, 0, maxBuffers),
	}
}

// Acquire returns a free buffer, allocating a new one only while the
// pool is below its configured maximum. Fails with ErrPoolExhausted
// when every buffer is leased; admission-control policy on that error
// belongs to the caller.
//
// Contents of an acquired buffer are zeroed but callers must still
// never read past the length they wrote or received into it.
func (p *Pool) Acquire() (*Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free = p.free[:n-1]
		buf.leased = true
		return buf, nil
	}

	if p.allocated >= p.max {
		return nil, fmt.Errorf("%w: all %d buffers leased", ErrPoolExhausted, p.max)
	}

	p.allocated++
	return &Buffer{
		pool:   p,
		data:   make([]byte, p.size),
		leased: true,
	}, nil
}

// Release returns a buffer to the free list. Releasing a buffer twice,
// or one obtained from a different pool, is a programmer error and
// panics rather than corrupting the free list. The buffer is zeroed and
// its generation bumped, invalidating every segment that references it.
func (p *Pool) Release(b *Buffer) {
	if b == nil || b.pool != p {
		panic("girder: buffer released to a pool that does not own it")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !b.leased {
		panic("girder: buffer double-released")
	}
	b.leased = false
	b.gen++
	clear(b.data)
	p.free = append(p.free, b)
}

// InUse reports how many buffers are currently leased.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated - len(p.free)
}

// Allocated reports how many buffers the pool has ever created. Never
// exceeds the configured maximum.
func (p *Pool) Allocated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}
