package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/spotify"
)

func TestGenerateToolsMarkdown(t *testing.T) {
	tokens, err := spotify.NewTokenManager(spotify.Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), spotify.NewClient(tokens))
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	mcpSrv := mcpserver.NewMCPServer("spotify-mcp", "test",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)
	if err := registerAllTools(mcpSrv, sc); err != nil {
		t.Fatalf("registerAllTools() error = %v", err)
	}

	serverTools := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(serverTools))
	for _, serverTool := range serverTools {
		tools = append(tools, serverTool.Tool)
	}

	markdown := generateToolsMarkdown(tools)

	for _, want := range []string{
		"# MCP Tools Reference",
		"## Search Tools",
		"## Browse Tools",
		"### search_music",
		"### get_music_recommendations",
		"`query` (required)",
		"SPOTIFY_REFRESH_TOKEN",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("generated markdown missing %q", want)
		}
	}
	if strings.Contains(markdown, "## Other") {
		t.Error("all tools should map to a named category")
	}
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "search_music", want: "Search Tools"},
		{name: "get_track_audio_features", want: "Track Tools"},
		{name: "get_artist_top_tracks", want: "Artist Tools"},
		{name: "get_album_tracks", want: "Album Tools"},
		{name: "get_playlist_details", want: "Playlist Tools"},
		{name: "get_available_genres", want: "Discovery Tools"},
		{name: "get_category_playlists", want: "Browse Tools"},
		{name: "unknown_tool", want: "Other"},
	}

	for _, tt := range tests {
		if got := getCategoryFromToolName(tt.name); got != tt.want {
			t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
