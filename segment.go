package girder

import (
	"fmt"

	"github.com/girderhttp/girder/internal/crypto"
)

// Segment is a non-owning view of a slice of a pool Buffer: a buffer
// handle plus an offset and length. Segments are passed between the
// connection and the parser instead of copying bytes; overlapping
// segments of one buffer are legal. A segment must not outlive its
// buffer: once the buffer is released, the segment's generation no
// longer matches and Bytes panics instead of handing out recycled
// memory.
//
// The zero Segment is an empty view of no buffer.
type Segment struct {
	buf    *Buffer
	gen    uint64
	off    int
	length int
}

// Segment constructs a view of b covering [off, off+length), failing if
// the range exceeds the buffer's capacity.
func (b *Buffer) Segment(off, length int) (Segment, error) {
	if off < 0 || length < 0 || off+length > len(b.data) {
		return Segment{}, fmt.Errorf("segment [%d, %d+%d) out of range for %d-byte buffer",
			off, off, length, len(b.data))
	}
	return Segment{buf: b, gen: b.gen, off: off, length: length}, nil
}

// Len returns the number of bytes the segment covers.
func (s Segment) Len() int {
	return s.length
}

// Bytes returns the viewed bytes. It panics if the backing buffer has
// been released since the segment was created; a stale view must fail
// fast, not read another connection's data.
func (s Segment) Bytes() []byte {
	if s.buf == nil {
		return nil
	}
	if s.gen != s.buf.gen {
		panic("girder: segment references a released buffer")
	}
	return s.buf.data[s.off : s.off+s.length]
}

// SplitAt splits the segment into two non-overlapping sub-segments,
// [0, n) and [n, Len()).
func (s Segment) SplitAt(n int) (Segment, Segment, error) {
	if n < 0 || n > s.length {
		return Segment{}, Segment{}, fmt.Errorf("split at %d out of range for %d-byte segment", n, s.length)
	}
	head := s
	head.length = n
	tail := s
	tail.off += n
	tail.length -= n
	return head, tail, nil
}

// CopyTo copies the segment's bytes into dst, returning the number of
// bytes copied.
func (s Segment) CopyTo(dst []byte) int {
	if s.buf == nil {
		return 0
	}
	return copy(dst, s.Bytes())
}

// ConstantTimeEqual reports whether two segments hold equal bytes in
// time independent of where they first differ and of any length
// mismatch. This is the comparison MAC verification must use; see the
// secretbox package, which shares the same primitive.
func ConstantTimeEqual(a, b Segment) bool {
	return crypto.ConstantTimeEqual(a.Bytes(), b.Bytes())
}
