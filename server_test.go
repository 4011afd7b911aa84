package girder

import (
	"context"
	"net"
	"testing"
	"time"
)

func echoHandler(conn *Conn) {
	for {
		seg, err := conn.Receive(1)
		if err != nil || seg.Len() == 0 {
			return
		}
		if _, err := conn.Send(seg); err != nil {
			return
		}
	}
}

func startServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := NewServer(echoHandler, opts...)
	go srv.Serve(ln)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})

	return srv, ln.Addr().String()
}

func TestServer_Echo(t *testing.T) {
	_, addr := startServer(t)

	client, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatal(err)
	}

	reply := make([]byte, 4)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := readFull(client, reply); err != nil {
		t.Fatalf("read echo: %v", err)
	}
	if string(reply) != "ping" {
		t.Errorf("echo = %q", reply)
	}
}

func TestServer_BuffersRecycledAcrossConnections(t *testing.T) {
	srv, addr := startServer(t, WithBufferSize(128), WithMaxBuffers(6))

	for i := 0; i < 10; i++ {
		client, err := net.Dial("tcp", addr)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := client.Write([]byte("hi")); err != nil {
			t.Fatal(err)
		}
		reply := make([]byte, 2)
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, err := readFull(client, reply); err != nil {
			t.Fatalf("connection %d: %v", i, err)
		}
		client.Close()
	}

	// Ten sequential connections never need more than the configured
	// maximum of buffers.
	if got := srv.Pool().Allocated(); got > 6 {
		t.Errorf("Allocated() = %d, want <= 6", got)
	}
}

func TestServer_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := NewServer(echoHandler)
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ln)
	}()

	// Let the accept loop start.
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve() returned %v after shutdown, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after shutdown")
	}
}

func readFull(conn net.Conn, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := conn.Read(p[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
