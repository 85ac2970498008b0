package server

import (
	"context"
	"sync"

	"github.com/markusring/spotify-mcp/internal/instrumentation"
	"github.com/markusring/spotify-mcp/internal/spotify"
)

// ServerContext holds the shared dependencies for the MCP server.
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	client  *spotify.Client
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// ServerContextOption configures a ServerContext.
type ServerContextOption func(*ServerContext)

// WithMetrics attaches a metrics recorder for tool and API instrumentation.
func WithMetrics(m *instrumentation.Metrics) ServerContextOption {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithAuditLogger attaches an audit logger for tool invocations.
func WithAuditLogger(al *instrumentation.AuditLogger) ServerContextOption {
	return func(sc *ServerContext) { sc.audit = al }
}

// NewServerContext creates a new server context owning the Spotify client.
func NewServerContext(ctx context.Context, client *spotify.Client, opts ...ServerContextOption) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		client: client,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the Spotify API client.
func (sc *ServerContext) Client() *spotify.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client
}

// SetClient replaces the Spotify API client. Used by tests.
func (sc *ServerContext) SetClient(client *spotify.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// Metrics returns the metrics recorder, which may be nil when
// instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, which may be nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.audit
}

// TokenStatus reports the app token cache state for the /status endpoint.
func (sc *ServerContext) TokenStatus() spotify.TokenStatus {
	return sc.Client().TokenManager().Status()
}

// HasUserAuth reports whether user-scoped tools can be served.
func (sc *ServerContext) HasUserAuth() bool {
	return sc.Client().HasUserAuth()
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
