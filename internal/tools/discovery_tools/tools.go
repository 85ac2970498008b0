package discovery_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/spotify"
	"github.com/markusring/spotify-mcp/internal/tools/common"
)

const defaultRecommendationLimit = 20

// splitSeeds turns a comma-separated seed list into trimmed, non-empty IDs
func splitSeeds(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	seeds := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			seeds = append(seeds, trimmed)
		}
	}
	if len(seeds) == 0 {
		return nil
	}
	return seeds
}

// RegisterDiscoveryTools registers recommendation tools with the MCP server
func RegisterDiscoveryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	recommendationsTool := mcp.NewTool("get_music_recommendations",
		mcp.WithDescription("Get music recommendations based on seed tracks, artists, or genres. At least one seed is required; at most 5 seeds are accepted in total. Requires user authorization."),
		mcp.WithString("seed_tracks",
			mcp.Description("Comma-separated track IDs"),
		),
		mcp.WithString("seed_artists",
			mcp.Description("Comma-separated artist IDs"),
		),
		mcp.WithString("seed_genres",
			mcp.Description("Comma-separated genre names (see get_available_genres)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of recommendations to return (1-50, default 20)"),
		),
	)

	s.AddTool(recommendationsTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_music_recommendations", "recommendations", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMusicRecommendations(ctx, request, sc)
		}))

	genresTool := mcp.NewTool("get_available_genres",
		mcp.WithDescription("Get the list of all available genre seeds for recommendations. Requires user authorization."),
	)

	s.AddTool(genresTool, common.InstrumentedToolHandlerWithEndpoint(
		"get_available_genres", "recommendations/available-genre-seeds", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAvailableGenres(ctx, request, sc)
		}))

	return nil
}

func handleGetMusicRecommendations(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	seeds := spotify.RecommendationSeeds{
		Tracks:  splitSeeds(common.StringArg(args, "seed_tracks")),
		Artists: splitSeeds(common.StringArg(args, "seed_artists")),
		Genres:  splitSeeds(common.StringArg(args, "seed_genres")),
	}

	if !sc.HasUserAuth() {
		return mcp.NewToolResultError(common.UserAuthGuidance("get_music_recommendations")), nil
	}

	limit := common.IntArg(args, "limit", defaultRecommendationLimit)

	tracks, err := sc.Client().Recommendations(ctx, seeds, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get recommendations: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tracks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetAvailableGenres(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if !sc.HasUserAuth() {
		return mcp.NewToolResultError(common.UserAuthGuidance("get_available_genres")), nil
	}

	genres, err := sc.Client().AvailableGenres(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get genres: %v", err)), nil
	}

	result, _ := json.MarshalIndent(map[string][]string{"genres": genres}, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
