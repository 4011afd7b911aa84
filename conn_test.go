package girder

import (
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

// countingConn wraps a net.Conn and counts Read calls.
type countingConn struct {
	net.Conn
	reads atomic.Int32
}

func (c *countingConn) Read(p []byte) (int, error) {
	c.reads.Add(1)
	return c.Conn.Read(p)
}

// shortWriteConn wraps a net.Conn and caps each Write at limit bytes,
// forcing the connection's partial-write retry path.
type shortWriteConn struct {
	net.Conn
	limit int
}

func (c *shortWriteConn) Write(p []byte) (int, error) {
	if len(p) > c.limit {
		p = p[:c.limit]
	}
	return c.Conn.Write(p)
}

func newTestConn(t *testing.T, sock net.Conn) (*Conn, *Pool) {
	t.Helper()
	pool := NewPool(256, 8)
	conn, err := NewConn(NewTransport(sock), pool)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, pool
}

// TestConn_Pipelining models two requests arriving back-to-back in one
// socket read: the parser splits the first receive, returns the tail
// via Unread, and the next receive must serve it without a transport
// read.
func TestConn_Pipelining(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	counting := &countingConn{Conn: server}
	conn, _ := newTestConn(t, counting)

	const wire = "GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n"
	go func() {
		client.Write([]byte(wire))
	}()

	seg, err := conn.Receive(len(wire))
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if string(seg.Bytes()) != wire {
		t.Fatalf("received %q", seg.Bytes())
	}
	readsBefore := counting.reads.Load()

	first, rest, err := seg.SplitAt(len(wire) / 2)
	if err != nil {
		t.Fatal(err)
	}
	if string(first.Bytes()) != wire[:len(wire)/2] {
		t.Errorf("first request = %q", first.Bytes())
	}
	if err := conn.Unread(rest); err != nil {
		t.Fatalf("Unread() error = %v", err)
	}

	second, err := conn.Receive(1)
	if err != nil {
		t.Fatalf("second Receive() error = %v", err)
	}
	if string(second.Bytes()) != wire[len(wire)/2:] {
		t.Errorf("second receive = %q", second.Bytes())
	}
	if counting.reads.Load() != readsBefore {
		t.Error("second Receive issued a transport read despite the pending queue")
	}
}

func TestConn_Receive_MinBytes(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	conn, _ := newTestConn(t, server)

	// The payload arrives in two writes; Receive(10) must keep reading
	// until it has at least 10 bytes.
	go func() {
		client.Write([]byte("01234"))
		client.Write([]byte("56789"))
	}()

	seg, err := conn.Receive(10)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if string(seg.Bytes()) != "0123456789" {
		t.Errorf("received %q", seg.Bytes())
	}
}

func TestConn_Receive_OrderlyShutdown(t *testing.T) {
	client, server := net.Pipe()
	conn, _ := newTestConn(t, server)

	client.Close()

	seg, err := conn.Receive(1)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if seg.Len() != 0 {
		t.Errorf("Receive() = %d bytes, want 0 on clean shutdown", seg.Len())
	}
}

func TestConn_Send_CompletesPartialWrites(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	conn, pool := newTestConn(t, &shortWriteConn{Conn: server, limit: 3})

	buf, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Release(buf)
	payload := "a response larger than the write limit"
	copy(buf.data, payload)
	seg, err := buf.Segment(0, len(payload))
	if err != nil {
		t.Fatal(err)
	}

	got := make([]byte, 0, len(payload))
	done := make(chan struct{})
	go func() {
		defer close(done)
		chunk := make([]byte, 16)
		for len(got) < len(payload) {
			n, err := client.Read(chunk)
			got = append(got, chunk[:n]...)
			if err != nil {
				return
			}
		}
	}()

	n, err := conn.Send(seg)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if n != len(payload) {
		t.Errorf("Send() = %d, want %d", n, len(payload))
	}
	<-done
	if string(got) != payload {
		t.Errorf("peer received %q", got)
	}
}

func TestConn_CloseReleasesBuffers(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	pool := NewPool(64, 4)
	conn, err := NewConn(NewTransport(server), pool)
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		client.Write([]byte("data"))
	}()
	if _, err := conn.Receive(4); err != nil {
		t.Fatal(err)
	}

	// Line buffer plus one read buffer are held.
	if got := pool.InUse(); got != 2 {
		t.Fatalf("InUse() before close = %d, want 2", got)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := pool.InUse(); got != 0 {
		t.Errorf("InUse() after close = %d, want 0", got)
	}

	// Idempotent.
	if err := conn.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestConn_OperationsAfterClose(t *testing.T) {
	_, server := net.Pipe()
	conn, _ := newTestConn(t, server)
	conn.Close()

	if _, err := conn.Receive(1); !errors.Is(err, ErrConnClosed) {
		t.Errorf("Receive() = %v, want ErrConnClosed", err)
	}
	if _, err := conn.Send(Segment{}); !errors.Is(err, ErrConnClosed) {
		t.Errorf("Send() = %v, want ErrConnClosed", err)
	}
	if err := conn.Unread(Segment{}); !errors.Is(err, ErrConnClosed) {
		t.Errorf("Unread() = %v, want ErrConnClosed", err)
	}
	if seg := conn.LineBuffer(); seg.Len() != 0 {
		t.Error("LineBuffer() non-empty after close")
	}
}

// TestConn_CloseInterruptsReceive closes the connection from another
// goroutine while a receive is blocked and expects the receive to fail
// promptly instead of hanging.
func TestConn_CloseInterruptsReceive(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	pool := NewPool(64, 4)
	conn, err := NewConn(NewTransport(server), pool)
	if err != nil {
		t.Fatal(err)
	}

	result := make(chan error, 1)
	go func() {
		_, err := conn.Receive(1)
		result <- err
	}()

	time.Sleep(10 * time.Millisecond)
	conn.Close()

	select {
	case err := <-result:
		if err == nil {
			t.Error("expected the in-flight receive to fail")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("receive did not return after close")
	}
}

func TestConn_LineBuffer(t *testing.T) {
	_, server := net.Pipe()
	conn, pool := newTestConn(t, server)

	seg := conn.LineBuffer()
	if seg.Len() != 256 {
		t.Errorf("LineBuffer() length = %d, want pool buffer size 256", seg.Len())
	}
	if got := pool.InUse(); got != 1 {
		t.Errorf("InUse() = %d, want 1 (the line buffer)", got)
	}
}
