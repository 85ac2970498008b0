package track_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/tools/common"
)

// RegisterTrackTools registers track inspection tools with the MCP server
func RegisterTrackTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	trackDetailsTool := mcp.NewTool("get_track_details",
		mcp.WithDescription("Get detailed information about a specific track including popularity, duration, and album information. Requires a Spotify track ID."),
		mcp.WithString("track_id",
			mcp.Required(),
			mcp.Description("Spotify track ID (e.g., '4iV5W9uYEdYUVa79Axb7Rh')"),
		),
	)

	s.AddTool(trackDetailsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_track_details", "tracks/{id}", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTrackDetails(ctx, request, sc)
		}))

	audioFeaturesTool := mcp.NewTool("get_track_audio_features",
		mcp.WithDescription("Get detailed audio features for a track including tempo, key, danceability, energy, valence, and other musical characteristics. Requires user authorization."),
		mcp.WithString("track_id",
			mcp.Required(),
			mcp.Description("Spotify track ID"),
		),
	)

	s.AddTool(audioFeaturesTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_track_audio_features", "audio-features/{id}", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTrackAudioFeatures(ctx, request, sc)
		}))

	return nil
}

func handleGetTrackDetails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	trackID := common.StringArg(args, "track_id")
	if trackID == "" {
		return mcp.NewToolResultError("track_id is required"), nil
	}

	track, err := sc.Client().Track(ctx, trackID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get track: %v", err)), nil
	}

	result, _ := json.MarshalIndent(track, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTrackAudioFeatures(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	trackID := common.StringArg(args, "track_id")
	if trackID == "" {
		return mcp.NewToolResultError("track_id is required"), nil
	}

	if !sc.HasUserAuth() {
		return mcp.NewToolResultError(common.UserAuthGuidance("get_track_audio_features")), nil
	}

	features, err := sc.Client().TrackAudioFeatures(ctx, trackID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get audio features: %v", err)), nil
	}

	result, _ := json.MarshalIndent(features, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
