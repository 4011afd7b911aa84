package girder

import (
	"crypto/tls"

	"github.com/rs/zerolog"
)

const (
	defaultBufferSize = 8 * 1024
	defaultMaxBuffers = 1024
)

// serverConfig holds configuration for the server.
type serverConfig struct {
	bufferSize int
	maxBuffers int
	tlsConfig  *tls.Config
	logger     zerolog.Logger
}

// Option configures the server.
type Option func(*serverConfig)

// WithBufferSize sets the size in bytes of each pooled buffer.
func WithBufferSize(n int) Option {
	return func(c *serverConfig) {
		c.bufferSize = n
	}
}

// WithMaxBuffers caps how many buffers the pool may hold in
// circulation. When the cap is reached new connections are shed until
// buffers are released.
func WithMaxBuffers(n int) Option {
	return func(c *serverConfig) {
		c.maxBuffers = n
	}
}

// WithTLS serves accepted connections over TLS using cfg.
func WithTLS(cfg *tls.Config) Option {
	return func(c *serverConfig) {
		c.tlsConfig = cfg
	}
}

// WithLogger sets the structured logger for the accept loop and
// connection lifecycle. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

func defaultConfig() serverConfig {
	return serverConfig{
		bufferSize: defaultBufferSize,
		maxBuffers: defaultMaxBuffers,
		logger:     zerolog.Nop(),
	}
}
