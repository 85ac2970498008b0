package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/config"
	"github.com/markusring/spotify-mcp/internal/instrumentation"
	"github.com/markusring/spotify-mcp/internal/resources"
	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/spotify"
	"github.com/markusring/spotify-mcp/internal/tools/album_tools"
	"github.com/markusring/spotify-mcp/internal/tools/artist_tools"
	"github.com/markusring/spotify-mcp/internal/tools/browse_tools"
	"github.com/markusring/spotify-mcp/internal/tools/discovery_tools"
	"github.com/markusring/spotify-mcp/internal/tools/playlist_tools"
	"github.com/markusring/spotify-mcp/internal/tools/search_tools"
	"github.com/markusring/spotify-mcp/internal/tools/track_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode bool
		transport string
		httpAddr  string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Spotify catalog
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Credentials:
  SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET env vars are required.
  They can also be placed in a .env file in the working directory.

  SPOTIFY_REFRESH_TOKEN optionally enables user-scoped tools
  (audio features, recommendations, genre seeds).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, debugMode, httpAddr, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP server address for the sse and streamable-http transports. Defaults to the port from SPOTIFY_MCP_SERVER_PORT (5000).")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr string, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	setupLogging(debugMode)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server stopped with error: %v", err)
			}
		}()
	}

	// Build the Spotify client
	creds := spotify.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}

	var tmOpts []spotify.TokenManagerOption
	if provider.Enabled() {
		metrics := provider.Metrics()
		tmOpts = append(tmOpts, spotify.WithRefreshObserver(func(ctx context.Context, err error) {
			result := instrumentation.RefreshResultSuccess
			if err != nil {
				result = instrumentation.RefreshResultFailure
			}
			metrics.RecordTokenRefresh(ctx, result)
		}))
	}
	tokens, err := spotify.NewTokenManager(creds, tmOpts...)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	// The user token source starts unavailable when no user tokens are
	// configured; the interactive flow on the HTTP transports can enable it
	// at runtime.
	userTokens := spotify.NewUserTokenSource(shutdownCtx, creds, cfg.RefreshToken, cfg.AccessToken)
	client := spotify.NewClient(tokens, spotify.WithUserTokenSource(userTokens))

	// Create server context
	var scOpts []server.ServerContextOption
	if provider.Enabled() {
		scOpts = append(scOpts,
			server.WithMetrics(provider.Metrics()),
			server.WithAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging)),
		)
	}
	serverContext, err := server.NewServerContext(shutdownCtx, client, scOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("spotify-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	// Register all tools
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	if transport != "stdio" {
		slog.Info("user-scoped tools", "enabled", cfg.HasUserAuth())
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "sse", "streamable-http":
		addr := httpAddr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}
		return runHTTPServer(shutdownCtx, mcpSrv, serverContext, transport, addr, cfg.RedirectURI)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", transport)
	}
}

// setupLogging routes logs to stderr so the stdio transport keeps stdout
// clean for protocol frames.
func setupLogging(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, transport, addr, redirectURI string) error {
	health := server.NewHealthChecker(sc)

	httpServer, err := server.NewHTTPServer(mcpSrv, sc, health, transport,
		server.WithAuthRedirectURI(redirectURI))
	if err != nil {
		return err
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()
	health.SetReady(true)

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// registerAllTools registers all MCP tools with the server
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	// Define all tool registrations
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Search",
			register: func() error {
				return search_tools.RegisterSearchTools(mcpSrv, ctx)
			},
		},
		{
			name: "Tracks",
			register: func() error {
				return track_tools.RegisterTrackTools(mcpSrv, ctx)
			},
		},
		{
			name: "Artists",
			register: func() error {
				return artist_tools.RegisterArtistTools(mcpSrv, ctx)
			},
		},
		{
			name: "Albums",
			register: func() error {
				return album_tools.RegisterAlbumTools(mcpSrv, ctx)
			},
		},
		{
			name: "Playlists",
			register: func() error {
				return playlist_tools.RegisterPlaylistTools(mcpSrv, ctx)
			},
		},
		{
			name: "Discovery",
			register: func() error {
				return discovery_tools.RegisterDiscoveryTools(mcpSrv, ctx)
			},
		},
		{
			name: "Browse",
			register: func() error {
				return browse_tools.RegisterBrowseTools(mcpSrv, ctx)
			},
		},
		{
			name: "Server Resources",
			register: func() error {
				return resources.RegisterServerResources(mcpSrv, ctx)
			},
		},
	}

	// Register all tools
	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
