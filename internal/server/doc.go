// Package server provides the MCP server context, HTTP transports, and
// operational endpoints for the spotify-mcp application.
//
// # Key Components
//
// ServerContext owns the Spotify API client and the instrumentation wiring
// (metrics recorder, audit logger). Tool handlers reach the client through
// it, and shutdown is coordinated through its context.
//
// HTTPServer hosts the MCP protocol over SSE or streamable HTTP together
// with the operational endpoints:
//   - /healthz: liveness probe
//   - /readyz: readiness probe, reflecting token manager health
//   - /status: token cache diagnostics (never the token value itself)
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from application traffic.
package server
