package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/server"
)

// RegisterServerResources registers diagnostic resources describing the
// server's upstream credential state.
func RegisterServerResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	tokenResource := mcp.NewResource(
		"spotify://token-status",
		"Spotify Token Status",
		mcp.WithResourceDescription("Cached application token diagnostics: expiry, last refresh, last error"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(tokenResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleTokenStatus(ctx, request, sc)
	})

	capabilitiesResource := mcp.NewResource(
		"spotify://capabilities",
		"Server Capabilities",
		mcp.WithResourceDescription("Which tool families are available with the configured credentials"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(capabilitiesResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCapabilities(ctx, request, sc)
	})

	return nil
}

func handleTokenStatus(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	status := sc.TokenStatus()

	jsonData, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleCapabilities(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	userAuth := sc.HasUserAuth()

	capabilities := map[string]interface{}{
		"catalog_tools":   true,
		"user_auth_tools": userAuth,
		"notes":           "user_auth_tools covers get_track_audio_features, get_music_recommendations and get_available_genres",
	}

	jsonData, err := json.MarshalIndent(capabilities, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capabilities: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
