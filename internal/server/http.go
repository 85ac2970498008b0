package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPServer hosts the MCP protocol over SSE or streamable HTTP together
// with the operational endpoints.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	health        *HealthChecker
	httpServer    *http.Server
	serverType    string // "sse" or "streamable-http"
	redirectURI   string
}

// HTTPServerOption configures an HTTPServer.
type HTTPServerOption func(*HTTPServer)

// WithAuthRedirectURI enables the interactive authorization endpoints using
// the given OAuth callback URI.
func WithAuthRedirectURI(uri string) HTTPServerOption {
	return func(s *HTTPServer) { s.redirectURI = uri }
}

// NewHTTPServer creates a new HTTP server for the given MCP server and
// transport type.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, health *HealthChecker, serverType string, opts ...HTTPServerOption) (*HTTPServer, error) {
	switch serverType {
	case "sse", "streamable-http":
	default:
		return nil, fmt.Errorf("unsupported server type: %s", serverType)
	}

	s := &HTTPServer{
		mcpServer:     mcpServer,
		serverContext: sc,
		health:        health,
		serverType:    serverType,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	if s.redirectURI != "" {
		if tokens := s.serverContext.Client().UserTokens(); tokens != nil {
			RegisterAuthEndpoints(mux, tokens, s.redirectURI)
		}
	}

	// Register MCP endpoints based on server type
	switch s.serverType {
	case "sse":
		sseServer := mcpserver.NewSSEServer(s.mcpServer,
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
		)
		mux.Handle("/sse", s.instrument(sseServer))
		mux.Handle("/message", s.instrument(sseServer))

	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
		)
		mux.Handle("/mcp", s.instrument(httpServer))
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting http server", "addr", addr, "transport", s.serverType)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// instrument wraps an MCP endpoint handler with HTTP request metrics.
func (s *HTTPServer) instrument(next http.Handler) http.Handler {
	metrics := s.serverContext.Metrics()
	if metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.written {
		r.status = status
		r.written = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.written = true
	return r.ResponseWriter.Write(b)
}

// Flush lets streaming transports flush through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
