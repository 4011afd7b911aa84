package girder

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
)

// Handler serves one accepted connection. It runs on its own goroutine
// and owns the connection until it returns; the server closes the
// connection afterwards. Deadline policy (racing receives against a
// timer and closing on expiry) is the handler's responsibility.
type Handler func(conn *Conn)

// Server accepts sockets and hands them to a Handler as pool-backed
// connections. One goroutine per connection; the buffer pool is the
// only state shared between them.
type Server struct {
	cfg     serverConfig
	pool    *Pool
	handler Handler

	mu         sync.Mutex
	ln         net.Listener
	inShutdown atomic.Bool
	wg         sync.WaitGroup
}

// NewServer creates a server that dispatches accepted connections to
// handler.
func NewServer(handler Handler, opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		cfg:     cfg,
		pool:    NewPool(cfg.bufferSize, cfg.maxBuffers),
		handler: handler,
	}
}

// Pool returns the server's buffer pool.
func (s *Server) Pool() *Pool {
	return s.pool
}

// ListenAndServe listens on addr and serves until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections from ln until the listener is closed.
// Returns nil after Shutdown closes the listener.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	for {
		sock, err := ln.Accept()
		if err != nil {
			if s.inShutdown.Load() {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return err
		}
		s.wg.Add(1)
		go s.serveConn(sock)
	}
}

func (s *Server) serveConn(sock net.Conn) {
	defer s.wg.Done()

	log := s.cfg.logger.With().Stringer("peer", sock.RemoteAddr()).Logger()

	tr, err := s.transportFor(sock)
	if err != nil {
		log.Warn().Err(err).Msg("tls handshake failed")
		sock.Close()
		return
	}

	conn, err := NewConn(tr, s.pool)
	if err != nil {
		// Pool exhausted: shed the connection rather than queue it.
		log.Warn().Err(err).Msg("connection shed")
		tr.Close()
		return
	}
	defer conn.Close()

	log.Debug().Stringer("transport", tr.Kind()).Msg("connection accepted")
	s.handler(conn)
	log.Debug().Msg("connection done")
}

func (s *Server) transportFor(sock net.Conn) (*Transport, error) {
	if s.cfg.tlsConfig != nil {
		return NewTLSTransport(sock, s.cfg.tlsConfig)
	}
	return NewTransport(sock), nil
}

// Shutdown stops accepting and waits for in-flight handlers to finish,
// or for ctx to expire, whichever comes first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)

	s.mu.Lock()
	if s.ln != nil {
		s.ln.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
