package discovery_tools

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

func newToolServerContext(t *testing.T, apiHandler http.HandlerFunc, userAuth bool) *server.ServerContext {
	t.Helper()

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(authSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	creds := spotify.Credentials{ClientID: "client-id", ClientSecret: "client-secret"}

	tokens, err := spotify.NewTokenManager(creds, spotify.WithAuthURL(authSrv.URL))
	require.NoError(t, err)

	opts := []spotify.ClientOption{
		spotify.WithBaseURL(apiSrv.URL),
		spotify.WithCallBackoff(time.Millisecond),
	}
	if userAuth {
		opts = append(opts, spotify.WithUserTokenSource(
			spotify.NewUserTokenSource(context.Background(), creds, "", "user-tok")))
	}

	sc, err := server.NewServerContext(context.Background(), spotify.NewClient(tokens, opts...))
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

func TestSplitSeeds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "single seed", input: "a1", expected: []string{"a1"}},
		{name: "multiple seeds", input: "a1,a2,a3", expected: []string{"a1", "a2", "a3"}},
		{name: "seeds with spaces", input: "a1, a2 , a3", expected: []string{"a1", "a2", "a3"}},
		{name: "trailing comma", input: "a1,", expected: []string{"a1"}},
		{name: "only commas", input: ",,", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSeeds(tt.input))
		})
	}
}

func TestGetMusicRecommendationsWithoutUserAuth(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	}, false)

	result, err := handleGetMusicRecommendations(context.Background(), callRequest(map[string]interface{}{
		"seed_genres": "jazz",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "SPOTIFY_REFRESH_TOKEN")
}

func TestGetMusicRecommendations(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations", r.URL.Path)
		assert.Equal(t, "Bearer user-tok", r.Header.Get("Authorization"))
		assert.Equal(t, "jazz,bebop", r.URL.Query().Get("seed_genres"))
		assert.Equal(t, "a1", r.URL.Query().Get("seed_artists"))
		fmt.Fprint(w, `{"tracks":[{"id":"t1","name":"Giant Steps","artists":[{"id":"a2","name":"John Coltrane"}]}]}`)
	}, true)

	result, err := handleGetMusicRecommendations(context.Background(), callRequest(map[string]interface{}{
		"seed_genres":  "jazz, bebop",
		"seed_artists": "a1",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Giant Steps")
}

func TestGetMusicRecommendationsRequiresSeeds(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	}, true)

	result, err := handleGetMusicRecommendations(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "seed")
}

func TestGetAvailableGenresWithoutUserAuth(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	}, false)

	result, err := handleGetAvailableGenres(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "SPOTIFY_REFRESH_TOKEN")
}

func TestGetAvailableGenres(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations/available-genre-seeds", r.URL.Path)
		fmt.Fprint(w, `{"genres":["acoustic","bebop","jazz"]}`)
	}, true)

	result, err := handleGetAvailableGenres(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "bebop")
	assert.Contains(t, text, "acoustic")
}

func TestRegisterDiscoveryTools(t *testing.T) {
	sc := newToolServerContext(t, func(w http.ResponseWriter, r *http.Request) {}, false)
	s := mcpserver.NewMCPServer("test", "0.0.1")

	require.NoError(t, RegisterDiscoveryTools(s, sc))
}
