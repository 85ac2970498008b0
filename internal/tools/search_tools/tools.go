package search_tools

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

// RegisterSearchTools registers catalog search tools with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("search_music",
		mcp.WithDescription("Search for tracks, artists, albums, or playlists on Spotify. Specify the query and type of content to search for. Returns results including IDs, names, popularity, and other metadata."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g., 'Bohemian Rhapsody', 'The Beatles', 'jazz')"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Type of content to search for: track, artist, album, or playlist"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (1-50, default 10)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithEndpoint(
		"search_music", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchMusic(ctx, request, sc)
		}))

	return nil
}

func handleSearchMusic(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := common.StringArg(args, "query")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	queryType := common.StringArg(args, "type")
	if queryType == "" {
		return mcp.NewToolResultError("type is required (track, artist, album, or playlist)"), nil
	}

	limit := common.IntArg(args, "limit", spotify.DefaultLimit)

	results, err := sc.Client().Search(ctx, query, queryType, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
	}

	result, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
