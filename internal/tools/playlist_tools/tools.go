package playlist_tools

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

// RegisterPlaylistTools registers playlist reading tools with the MCP server
func RegisterPlaylistTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	playlistDetailsTool := mcp.NewTool("get_playlist_details",
		mcp.WithDescription("Get comprehensive playlist information including description, follower count, track count, and owner details."),
		mcp.WithString("playlist_id",
			mcp.Required(),
			mcp.Description("Spotify playlist ID"),
		),
	)

	s.AddTool(playlistDetailsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_playlist_details", "playlists/{id}", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetPlaylistDetails(ctx, request, sc)
		}))

	playlistTracksTool := mcp.NewTool("get_playlist_tracks",
		mcp.WithDescription("Get tracks from a playlist with complete track and artist information. Locally-added files without a Spotify ID are skipped."),
		mcp.WithString("playlist_id",
			mcp.Required(),
			mcp.Description("Spotify playlist ID"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of tracks to return (1-50, default 50)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Index of the first track to return (default 0)"),
		),
	)

	s.AddTool(playlistTracksTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_playlist_tracks", "playlists/{id}/tracks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetPlaylistTracks(ctx, request, sc)
		}))

	return nil
}

func handleGetPlaylistDetails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	playlistID := common.StringArg(args, "playlist_id")
	if playlistID == "" {
		return mcp.NewToolResultError("playlist_id is required"), nil
	}

	playlist, err := sc.Client().Playlist(ctx, playlistID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get playlist: %v", err)), nil
	}

	result, _ := json.MarshalIndent(playlist, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetPlaylistTracks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	playlistID := common.StringArg(args, "playlist_id")
	if playlistID == "" {
		return mcp.NewToolResultError("playlist_id is required"), nil
	}

	limit := common.IntArg(args, "limit", spotify.MaxLimit)
	offset := common.IntArg(args, "offset", 0)

	tracks, err := sc.Client().PlaylistTracks(ctx, playlistID, limit, offset)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get playlist tracks: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tracks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
