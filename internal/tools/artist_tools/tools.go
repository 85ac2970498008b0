package artist_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/tools/common"
)

const defaultAlbumLimit = 20

// RegisterArtistTools registers artist exploration tools with the MCP server
func RegisterArtistTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	artistDetailsTool := mcp.NewTool("get_artist_details",
		mcp.WithDescription("Get comprehensive information about an artist including genres, popularity, follower count, and images."),
		mcp.WithString("artist_id",
			mcp.Required(),
			mcp.Description("Spotify artist ID"),
		),
	)

	s.AddTool(artistDetailsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_artist_details", "artists/{id}", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetArtistDetails(ctx, request, sc)
		}))

	topTracksTool := mcp.NewTool("get_artist_top_tracks",
		mcp.WithDescription("Get an artist's most popular tracks in a specific market. Returns up to 10 tracks."),
		mcp.WithString("artist_id",
			mcp.Required(),
			mcp.Description("Spotify artist ID"),
		),
		mcp.WithString("market",
			mcp.Description("Market/country code (default: 'US')"),
		),
	)

	s.AddTool(topTracksTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_artist_top_tracks", "artists/{id}/top-tracks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetArtistTopTracks(ctx, request, sc)
		}))

	artistAlbumsTool := mcp.NewTool("get_artist_albums",
		mcp.WithDescription("Get albums by an artist including studio albums, singles, compilations, and appears-on releases."),
		mcp.WithString("artist_id",
			mcp.Required(),
			mcp.Description("Spotify artist ID"),
		),
		mcp.WithString("include_groups",
			mcp.Description("Comma-separated release groups: album, single, compilation, appears_on (default: 'album,single')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of albums to return (1-50, default 20)"),
		),
	)

	s.AddTool(artistAlbumsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_artist_albums", "artists/{id}/albums", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetArtistAlbums(ctx, request, sc)
		}))

	return nil
}

func handleGetArtistDetails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	artistID := common.StringArg(args, "artist_id")
	if artistID == "" {
		return mcp.NewToolResultError("artist_id is required"), nil
	}

	artist, err := sc.Client().Artist(ctx, artistID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get artist: %v", err)), nil
	}

	result, _ := json.MarshalIndent(artist, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetArtistTopTracks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	artistID := common.StringArg(args, "artist_id")
	if artistID == "" {
		return mcp.NewToolResultError("artist_id is required"), nil
	}

	market := common.StringArg(args, "market")

	tracks, err := sc.Client().ArtistTopTracks(ctx, artistID, market)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get top tracks: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tracks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetArtistAlbums(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	artistID := common.StringArg(args, "artist_id")
	if artistID == "" {
		return mcp.NewToolResultError("artist_id is required"), nil
	}

	includeGroups := common.StringArg(args, "include_groups")
	if includeGroups == "" {
		includeGroups = "album,single"
	}
	limit := common.IntArg(args, "limit", defaultAlbumLimit)

	albums, err := sc.Client().ArtistAlbums(ctx, artistID, includeGroups, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get artist albums: %v", err)), nil
	}

	result, _ := json.MarshalIndent(albums, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
