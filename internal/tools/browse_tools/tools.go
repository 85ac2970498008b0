package browse_tools

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

const defaultBrowseLimit = 20

// RegisterBrowseTools registers editorial browse tools with the MCP server
func RegisterBrowseTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	newReleasesTool := mcp.NewTool("get_new_releases",
		mcp.WithDescription("Get a list of new album releases featured on Spotify."),
		mcp.WithString("country",
			mcp.Description("Country code to scope releases (e.g., 'US', 'DE')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of releases to return (1-50, default 20)"),
		),
	)

	s.AddTool(newReleasesTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_new_releases", "browse/new-releases", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetNewReleases(ctx, request, sc)
		}))

	featuredTool := mcp.NewTool("get_featured_playlists",
		mcp.WithDescription("Get featured playlists from Spotify's editorial team."),
		mcp.WithString("country",
			mcp.Description("Country code to scope playlists"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of playlists to return (1-50, default 20)"),
		),
	)

	s.AddTool(featuredTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_featured_playlists", "browse/featured-playlists", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetFeaturedPlaylists(ctx, request, sc)
		}))

	categoriesTool := mcp.NewTool("get_categories",
		mcp.WithDescription("Get all available music categories used by Spotify."),
		mcp.WithString("country",
			mcp.Description("Country code to scope categories"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of categories to return (1-50, default 20)"),
		),
	)

	s.AddTool(categoriesTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_categories", "browse/categories", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCategories(ctx, request, sc)
		}))

	categoryPlaylistsTool := mcp.NewTool("get_category_playlists",
		mcp.WithDescription("Get playlists from a specific category."),
		mcp.WithString("category_id",
			mcp.Required(),
			mcp.Description("Spotify category ID (see get_categories)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of playlists to return (1-50, default 20)"),
		),
	)

	s.AddTool(categoryPlaylistsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_category_playlists", "browse/categories/{id}/playlists", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCategoryPlaylists(ctx, request, sc)
		}))

	return nil
}

func handleGetNewReleases(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	country := common.StringArg(args, "country")
	limit := common.IntArg(args, "limit", defaultBrowseLimit)

	albums, err := sc.Client().NewReleases(ctx, country, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get new releases: %v", err)), nil
	}

	result, _ := json.MarshalIndent(albums, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetFeaturedPlaylists(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	country := common.StringArg(args, "country")
	limit := common.IntArg(args, "limit", defaultBrowseLimit)

	message, playlists, err := sc.Client().FeaturedPlaylists(ctx, country, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get featured playlists: %v", err)), nil
	}

	result, _ := json.MarshalIndent(struct {
		Message   string             `json:"message,omitempty"`
		Playlists []spotify.Playlist `json:"playlists"`
	}{Message: message, Playlists: playlists}, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetCategories(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	country := common.StringArg(args, "country")
	limit := common.IntArg(args, "limit", defaultBrowseLimit)

	categories, err := sc.Client().Categories(ctx, country, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get categories: %v", err)), nil
	}

	result, _ := json.MarshalIndent(categories, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetCategoryPlaylists(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	categoryID := common.StringArg(args, "category_id")
	if categoryID == "" {
		return mcp.NewToolResultError("category_id is required"), nil
	}

	limit := common.IntArg(args, "limit", defaultBrowseLimit)

	playlists, err := sc.Client().CategoryPlaylists(ctx, categoryID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get category playlists: %v", err)), nil
	}

	result, _ := json.MarshalIndent(playlists, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
