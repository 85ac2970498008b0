package album_tools

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

func TestGetAlbumDetailsRequiresID(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	})

	result, err := handleGetAlbumDetails(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "album_id is required")
}

func TestGetAlbumDetails(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/albums/al1", r.URL.Path)
		fmt.Fprint(w, `{
			"id": "al1",
			"name": "Kind of Blue",
			"artists": [{"id": "a1", "name": "Miles Davis"}],
			"release_date": "1959-08-17",
			"total_tracks": 5,
			"label": "Columbia",
			"popularity": 75,
			"copyrights": [{"text": "(P) 1959 Columbia Records", "type": "P"}]
		}`)
	})

	result, err := handleGetAlbumDetails(context.Background(), callRequest(map[string]interface{}{
		"album_id": "al1",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Kind of Blue")
	assert.Contains(t, text, "Columbia")
	assert.Contains(t, text, "1959 Columbia Records")
}

func TestGetAlbumTracks(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/albums/al1/tracks", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"items":[
			{"id":"t1","name":"So What","track_number":1,"duration_ms":562000},
			{"id":"t2","name":"Freddie Freeloader","track_number":2,"duration_ms":589000}
		]}`)
	})

	result, err := handleGetAlbumTracks(context.Background(), callRequest(map[string]interface{}{
		"album_id": "al1",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "So What")
	assert.Contains(t, text, "Freddie Freeloader")
}

func TestGetAlbumTracksRequiresID(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	})

	result, err := handleGetAlbumTracks(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "album_id is required")
}

func TestRegisterAlbumTools(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {})
	s := mcpserver.NewMCPServer("test", "0.0.1")

	require.NoError(t, RegisterAlbumTools(s, sc))
}
