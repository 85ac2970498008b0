package album_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/spotify"
	"github.com/markusring/spotify-mcp/internal/tools/common"
)

// RegisterAlbumTools registers album inspection tools with the MCP server
func RegisterAlbumTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	albumDetailsTool := mcp.NewTool("get_album_details",
		mcp.WithDescription("Get complete album information including release date, label, genres, and images."),
		mcp.WithString("album_id",
			mcp.Required(),
			mcp.Description("Spotify album ID"),
		),
	)

	s.AddTool(albumDetailsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_album_details", "albums/{id}", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAlbumDetails(ctx, request, sc)
		}))

	albumTracksTool := mcp.NewTool("get_album_tracks",
		mcp.WithDescription("Get all tracks from a specific album with detailed information."),
		mcp.WithString("album_id",
			mcp.Required(),
			mcp.Description("Spotify album ID"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of tracks to return (1-50, default 50)"),
		),
	)

	s.AddTool(albumTracksTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_album_tracks", "albums/{id}/tracks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAlbumTracks(ctx, request, sc)
		}))

	return nil
}

func handleGetAlbumDetails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	albumID := common.StringArg(args, "album_id")
	if albumID == "" {
		return mcp.NewToolResultError("album_id is required"), nil
	}

	album, err := sc.Client().Album(ctx, albumID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get album: %v", err)), nil
	}

	result, _ := json.MarshalIndent(album, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetAlbumTracks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	albumID := common.StringArg(args, "album_id")
	if albumID == "" {
		return mcp.NewToolResultError("album_id is required"), nil
	}

	limit := common.IntArg(args, "limit", spotify.MaxLimit)

	tracks, err := sc.Client().AlbumTracks(ctx, albumID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get album tracks: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tracks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
