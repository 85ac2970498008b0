package browse_tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markusring/spotify-mcp/internal/server"
	"github.com/markusring/spotify-mcp/internal/spotify"
)

func newToolServerContext(t *testing.T, apiHandler http.HandlerFunc) *server.ServerContext {
	t.Helper()

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(authSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	tokens, err := spotify.NewTokenManager(spotify.Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, spotify.WithAuthURL(authSrv.URL))
	require.NoError(t, err)

	client := spotify.NewClient(tokens,
		spotify.WithBaseURL(apiSrv.URL),
		spotify.WithCallBackoff(time.Millisecond),
	)

	sc, err := server.NewServerContext(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestGetNewReleases(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/browse/new-releases", r.URL.Path)
		assert.Equal(t, "DE", r.URL.Query().Get("country"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"albums":{"items":[{"id":"al1","name":"New Album","release_date":"2026-08-28","total_tracks":10}]}}`)
	})

	result, err := handleGetNewReleases(context.Background(), callRequest(map[string]interface{}{
		"country": "DE",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "New Album")
}

func TestGetFeaturedPlaylists(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/browse/featured-playlists", r.URL.Path)
		fmt.Fprint(w, `{
			"message": "Editor's picks",
			"playlists": {"items": [{"id": "p1", "name": "Chill Vibes", "owner": {"id": "spotify"}}]}
		}`)
	})

	result, err := handleGetFeaturedPlaylists(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Editor's picks")
	assert.Contains(t, text, "Chill Vibes")
}

func TestGetCategories(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/browse/categories", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"categories":{"items":[
			{"id":"toplists","name":"Top Lists"},
			{"id":"jazz","name":"Jazz"}
		]}}`)
	})

	result, err := handleGetCategories(context.Background(), callRequest(map[string]interface{}{
		"limit": float64(5),
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "toplists")
	assert.Contains(t, text, "Jazz")
}

func TestGetCategoryPlaylistsRequiresID(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	})

	result, err := handleGetCategoryPlaylists(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "category_id is required")
}

func TestGetCategoryPlaylists(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/browse/categories/jazz/playlists", r.URL.Path)
		fmt.Fprint(w, `{"playlists":{"items":[{"id":"p1","name":"Jazz Classics","owner":{"id":"spotify","display_name":"Spotify"}}]}}`)
	})

	result, err := handleGetCategoryPlaylists(context.Background(), callRequest(map[string]interface{}{
		"category_id": "jazz",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Jazz Classics")
}

func TestRegisterBrowseTools(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {})
	s := mcpserver.NewMCPServer("test", "0.0.1")

	require.NoError(t, RegisterBrowseTools(s, sc))
}
