package playlist_tools

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

func TestGetPlaylistDetailsRequiresID(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	})

	result, err := handleGetPlaylistDetails(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "playlist_id is required")
}

func TestGetPlaylistDetails(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists/p1", r.URL.Path)
		fmt.Fprint(w, `{
			"id": "p1",
			"name": "Jazz Classics",
			"description": "Essential jazz",
			"owner": {"id": "spotify", "display_name": "Spotify"},
			"public": true,
			"followers": {"total": 1200000},
			"tracks": {"total": 80}
		}`)
	})

	result, err := handleGetPlaylistDetails(context.Background(), callRequest(map[string]interface{}{
		"playlist_id": "p1",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Jazz Classics")
	assert.Contains(t, text, "Essential jazz")
}

func TestGetPlaylistTracksWithOffset(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists/p1/tracks", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		fmt.Fprint(w, `{"items":[
			{"added_at":"2024-03-01T10:00:00Z","track":{"id":"t1","name":"Take Five","artists":[{"id":"a1","name":"Dave Brubeck"}]}},
			{"added_at":"2024-03-02T10:00:00Z","track":{"id":"","name":"local file"}}
		]}`)
	})

	result, err := handleGetPlaylistTracks(context.Background(), callRequest(map[string]interface{}{
		"playlist_id": "p1",
		"limit":       float64(10),
		"offset":      float64(20),
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Take Five")
	assert.NotContains(t, text, "local file")
}

func TestGetPlaylistTracksRequiresID(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	})

	result, err := handleGetPlaylistTracks(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "playlist_id is required")
}

func TestRegisterPlaylistTools(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {})
	s := mcpserver.NewMCPServer("test", "0.0.1")

	require.NoError(t, RegisterPlaylistTools(s, sc))
}
