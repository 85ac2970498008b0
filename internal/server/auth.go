package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/markusring/spotify-mcp/internal/config"
	"github.com/markusring/spotify-mcp/internal/spotify"
)

// authFlow serves the interactive PKCE authorization flow used to obtain a
// refresh token for the user-scoped tools. The login handler redirects the
// operator to Spotify's consent page; the callback redeems the returned code
// and installs the token on the running server.
type authFlow struct {
	tokens      *spotify.UserTokenSource
	redirectURI string

	mu        sync.Mutex
	verifiers map[string]string // state -> PKCE verifier
}

// RegisterAuthEndpoints registers the /oauth/login and /oauth/callback
// handlers on the given mux.
func RegisterAuthEndpoints(mux *http.ServeMux, tokens *spotify.UserTokenSource, redirectURI string) {
	a := &authFlow{
		tokens:      tokens,
		redirectURI: redirectURI,
		verifiers:   make(map[string]string),
	}
	mux.HandleFunc("/oauth/login", a.handleLogin)
	mux.HandleFunc("/oauth/callback", a.handleCallback)
}

func (a *authFlow) handleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	authURL, verifier := a.tokens.AuthorizationURL(a.redirectURI, state)

	a.mu.Lock()
	a.verifiers[state] = verifier
	a.mu.Unlock()

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (a *authFlow) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errCode := q.Get("error"); errCode != "" {
		http.Error(w, "authorization failed: "+errCode, http.StatusBadRequest)
		return
	}

	code := q.Get("code")
	state := q.Get("state")

	a.mu.Lock()
	verifier, ok := a.verifiers[state]
	delete(a.verifiers, state)
	a.mu.Unlock()

	if code == "" || !ok {
		http.Error(w, "invalid authorization response or state", http.StatusBadRequest)
		return
	}

	tok, err := a.tokens.Exchange(r.Context(), code, a.redirectURI, verifier)
	if err != nil {
		slog.Error("authorization code exchange failed", "error", err)
		http.Error(w, "token exchange failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	slog.Info("user authorization complete, user-scoped tools enabled")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h2>Spotify authorization complete</h2>\n")
	fmt.Fprint(w, "<p>The user token is active for this server process.</p>\n")
	if tok.RefreshToken != "" {
		fmt.Fprintf(w, "<p>Add this to your .env so future runs start authorized:</p>\n<pre>%s=%s</pre>\n",
			config.EnvRefreshToken, tok.RefreshToken)
	} else {
		fmt.Fprint(w, "<p>No refresh token was returned; check the requested scopes.</p>\n")
	}
	fmt.Fprint(w, "<p>You can close this window and check <a href=\"/status\">server status</a>.</p>\n")
}
