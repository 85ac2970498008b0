package spotify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	spotifyauth "golang.org/x/oauth2/spotify"
)

// userScopes are requested when building an authorization URL. They cover the
// read-only endpoints the user token is used for.
var userScopes = []string{
	"user-read-private",
	"user-read-email",
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-library-read",
}

// UserTokenSource serves bearer tokens for user-scoped endpoints. Tokens are
// minted from a configured refresh token via the standard OAuth2 refresh
// grant and cached until shortly before expiry; a pre-issued access token is
// accepted as a static fallback. The zero-value source reports unavailable
// until an interactive code exchange installs a token.
type UserTokenSource struct {
	conf *oauth2.Config
	ctx  context.Context

	mu           sync.Mutex
	ts           oauth2.TokenSource
	refreshToken string
	available    bool
}

// UserTokenSourceOption configures a UserTokenSource.
type UserTokenSourceOption func(*UserTokenSource)

// WithUserAuthURL overrides the token endpoint, used by tests.
func WithUserAuthURL(u string) UserTokenSourceOption {
	return func(s *UserTokenSource) { s.conf.Endpoint.TokenURL = u }
}

// NewUserTokenSource builds a source from the configured credentials.
// refreshToken and accessToken may both be empty, in which case user-scoped
// endpoints are unavailable and Token returns a guidance error until the
// interactive flow completes an Exchange.
func NewUserTokenSource(ctx context.Context, creds Credentials, refreshToken, accessToken string, opts ...UserTokenSourceOption) *UserTokenSource {
	u := &UserTokenSource{
		conf: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     spotifyauth.Endpoint,
			Scopes:       userScopes,
		},
		ctx: ctx,
	}
	for _, opt := range opts {
		opt(u)
	}

	switch {
	case refreshToken != "":
		u.refreshToken = refreshToken
		u.ts = u.refreshSource()
		u.available = true
	case accessToken != "":
		// A bare access token cannot be renewed; treat it as short-lived.
		u.ts = oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		})
		u.available = true
	}

	return u
}

// refreshSource builds a caching source around the stored refresh token.
// Callers must hold mu or be inside the constructor.
func (u *UserTokenSource) refreshSource() oauth2.TokenSource {
	base := u.conf.TokenSource(u.ctx, &oauth2.Token{
		TokenType:    "Bearer",
		RefreshToken: u.refreshToken,
		Expiry:       time.Unix(1, 0), // force an immediate refresh on first use
	})
	// Refresh proactively with the same margin the app token uses.
	return oauth2.ReuseTokenSourceWithExpiry(nil, base, DefaultExpiryMargin)
}

// Available reports whether user-scoped endpoints can be served.
func (u *UserTokenSource) Available() bool {
	if u == nil {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.available
}

// Token returns a valid user bearer token.
func (u *UserTokenSource) Token(ctx context.Context) (string, error) {
	if !u.Available() {
		return "", &Error{
			Kind:     KindAuthFatal,
			Endpoint: "api/token",
			Message:  "user authentication is not configured; set SPOTIFY_REFRESH_TOKEN to enable audio features, recommendations and genre data",
		}
	}

	u.mu.Lock()
	tok, err := u.ts.Token()
	u.mu.Unlock()
	if err != nil {
		return "", classifyUserTokenError(err)
	}
	return tok.AccessToken, nil
}

// Invalidate discards the cached user token so the next Token call performs a
// refresh grant. Used by the gateway when the upstream rejects a user token
// with 401. Static tokens cannot be renewed and are left in place.
func (u *UserTokenSource) Invalidate() {
	if u == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.refreshToken == "" {
		return
	}
	u.ts = u.refreshSource()
}

// AuthorizationURL returns the PKCE authorization URL for the interactive
// user flow together with the verifier the callback must present.
func (u *UserTokenSource) AuthorizationURL(redirectURI, state string) (authURL, verifier string) {
	conf := *u.conf
	conf.RedirectURL = redirectURI

	verifier = oauth2.GenerateVerifier()
	authURL = conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)
	return authURL, verifier
}

// Exchange redeems an authorization code from the interactive flow and
// installs the resulting token, enabling user-scoped endpoints for the rest
// of the process lifetime. The returned token carries the refresh token the
// operator should persist.
func (u *UserTokenSource) Exchange(ctx context.Context, code, redirectURI, verifier string) (*oauth2.Token, error) {
	conf := *u.conf
	conf.RedirectURL = redirectURI

	tok, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, classifyUserTokenError(err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if tok.RefreshToken != "" {
		u.refreshToken = tok.RefreshToken
	}
	u.ts = oauth2.ReuseTokenSourceWithExpiry(tok, u.conf.TokenSource(u.ctx, tok), DefaultExpiryMargin)
	u.available = true
	return tok, nil
}

// classifyUserTokenError maps oauth2 retrieval failures onto the error
// taxonomy: 4xx means the refresh token is bad or revoked, everything else is
// transient.
func classifyUserTokenError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode < 500 {
		return &Error{
			Kind:       KindAuthFatal,
			Endpoint:   "api/token",
			StatusCode: rerr.Response.StatusCode,
			Message:    fmt.Sprintf("user token refresh rejected: %s", rerr.ErrorCode),
			Err:        err,
		}
	}
	return &Error{Kind: KindAuthTemporary, Endpoint: "api/token", Err: err}
}
