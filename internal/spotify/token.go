package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/markusring/spotify-mcp/internal/logging"
)

// AuthURL is the Spotify client-credentials token endpoint.
const AuthURL = "https://accounts.spotify.com/api/token"

const (
	// DefaultExpiryMargin is how long before true expiry a cached token is
	// treated as expired and refreshed proactively.
	DefaultExpiryMargin = 60 * time.Second

	// DefaultExchangeAttempts bounds retries of transient exchange failures.
	DefaultExchangeAttempts = 3

	// DefaultExchangeBackoff is the initial backoff interval between
	// exchange retries.
	DefaultExchangeBackoff = 1 * time.Second

	// defaultTokenLifetime is assumed when the upstream omits expires_in.
	defaultTokenLifetime = 3600 * time.Second
)

// Credentials holds the application client id/secret for the
// client-credentials flow. Immutable for the process lifetime.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Validate checks that both credential fields are present.
func (c Credentials) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing client id or client secret")
	}
	return nil
}

// Token is an issued bearer token. Tokens are replaced, never mutated in
// place; a zero Token means nothing is cached.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token exists and its remaining lifetime exceeds
// the given safety margin.
func (t Token) Valid(margin time.Duration) bool {
	return t.Value != "" && time.Until(t.ExpiresAt) > margin
}

// TokenStatus describes the cached token for the status endpoint.
type TokenStatus struct {
	Cached      bool      `json:"cached"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	ExpiresIn   int64     `json:"expires_in_seconds"`
	LastRefresh time.Time `json:"last_refresh,omitzero"`
	LastError   string    `json:"last_error,omitempty"`
}

// TokenManager exchanges application credentials for bearer tokens and caches
// the current token in memory. It is safe for concurrent use; concurrent
// callers observing an absent or expiring token coalesce into a single
// upstream exchange.
type TokenManager struct {
	creds       Credentials
	httpClient  *http.Client
	authURL     string
	margin      time.Duration
	maxAttempts int
	backoffBase time.Duration
	logger      *slog.Logger
	observer    func(ctx context.Context, err error)

	group singleflight.Group

	mu          sync.RWMutex
	token       Token
	lastRefresh time.Time
	lastErr     error
}

// TokenManagerOption configures a TokenManager.
type TokenManagerOption func(*TokenManager)

// WithAuthURL overrides the token endpoint, used by tests.
func WithAuthURL(u string) TokenManagerOption {
	return func(m *TokenManager) { m.authURL = u }
}

// WithExpiryMargin sets the proactive refresh margin.
func WithExpiryMargin(margin time.Duration) TokenManagerOption {
	return func(m *TokenManager) { m.margin = margin }
}

// WithExchangeAttempts bounds retries of transient exchange failures.
func WithExchangeAttempts(attempts int) TokenManagerOption {
	return func(m *TokenManager) { m.maxAttempts = attempts }
}

// WithExchangeBackoff sets the initial exchange retry interval.
func WithExchangeBackoff(d time.Duration) TokenManagerOption {
	return func(m *TokenManager) { m.backoffBase = d }
}

// WithTokenHTTPClient overrides the HTTP client used for the exchange.
func WithTokenHTTPClient(c *http.Client) TokenManagerOption {
	return func(m *TokenManager) { m.httpClient = c }
}

// WithRefreshObserver registers a callback invoked after every refresh
// attempt; err is nil when the exchange succeeded. Used to feed refresh
// outcome metrics.
func WithRefreshObserver(fn func(ctx context.Context, err error)) TokenManagerOption {
	return func(m *TokenManager) { m.observer = fn }
}

// WithTokenLogger sets the logger for refresh events.
func WithTokenLogger(logger *slog.Logger) TokenManagerOption {
	return func(m *TokenManager) { m.logger = logger }
}

// NewTokenManager creates a TokenManager for the given credentials.
func NewTokenManager(creds Credentials, opts ...TokenManagerOption) (*TokenManager, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	m := &TokenManager{
		creds:       creds,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		authURL:     AuthURL,
		margin:      DefaultExpiryMargin,
		maxAttempts: DefaultExchangeAttempts,
		backoffBase: DefaultExchangeBackoff,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Token returns a bearer token that is valid for at least the safety margin.
// If the cached token is absent or expiring it performs a credential
// exchange; concurrent callers share a single exchange and all receive the
// resulting token or the resulting failure.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	tok := m.token
	m.mu.RUnlock()

	if tok.Valid(m.margin) {
		return tok.Value, nil
	}

	v, err, _ := m.group.Do("exchange", func() (interface{}, error) {
		// A caller that lost the race may find a fresh token already cached.
		m.mu.RLock()
		cached := m.token
		m.mu.RUnlock()
		if cached.Valid(m.margin) {
			return cached.Value, nil
		}

		tok, err := m.refresh(ctx)
		if err != nil {
			// A still-valid token keeps serving callers until true expiry.
			if cached.Valid(0) {
				m.logger.Warn("token refresh failed, serving cached token until expiry",
					logging.Err(err),
					slog.Time("expires_at", cached.ExpiresAt))
				return cached.Value, nil
			}
			return nil, err
		}
		return tok.Value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate discards the cached token so the next Token call performs an
// exchange. Used by the gateway when the upstream rejects a token with 401.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = Token{}
	m.mu.Unlock()
}

// Status reports the cached token state for diagnostics. The token value
// itself is never exposed.
func (m *TokenManager) Status() TokenStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := TokenStatus{
		Cached:      m.token.Value != "",
		LastRefresh: m.lastRefresh,
	}
	if status.Cached {
		status.ExpiresAt = m.token.ExpiresAt
		if remaining := time.Until(m.token.ExpiresAt); remaining > 0 {
			status.ExpiresIn = int64(remaining.Seconds())
		}
	}
	if m.lastErr != nil {
		status.LastError = m.lastErr.Error()
	}
	return status
}

// Healthy reports whether the most recent refresh attempt succeeded, or no
// refresh has been needed yet.
func (m *TokenManager) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr == nil
}

// refresh performs the credential exchange with bounded retries of transient
// failures and replaces the cached token on success.
func (m *TokenManager) refresh(ctx context.Context) (Token, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = m.backoffBase

	tok, err := backoff.RetryWithData(func() (Token, error) {
		tok, err := m.exchange(ctx)
		if err != nil {
			if KindOf(err) == KindAuthFatal {
				return Token{}, backoff.Permanent(err)
			}
			m.logger.Warn("token exchange failed, retrying", logging.Err(err))
			return Token{}, err
		}
		return tok, nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(m.maxAttempts-1)), ctx))

	if m.observer != nil {
		m.observer(ctx, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastErr = err
		return Token{}, err
	}

	m.token = tok
	m.lastRefresh = time.Now()
	m.lastErr = nil
	m.logger.Debug("token refreshed",
		slog.Time("expires_at", tok.ExpiresAt),
		slog.String("token", logging.SanitizeToken(tok.Value)))
	return tok, nil
}

// exchange performs a single client-credentials exchange call.
func (m *TokenManager) exchange(ctx context.Context) (Token, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, &Error{Kind: KindAuthTemporary, Endpoint: "api/token", Err: err}
	}
	req.SetBasicAuth(m.creds.ClientID, m.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Token{}, &Error{Kind: KindAuthTemporary, Endpoint: "api/token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 800))
		kind := KindAuthTemporary
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			kind = KindAuthFatal
		}
		return Token{}, &Error{
			Kind:       kind,
			Endpoint:   "api/token",
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Token{}, &Error{Kind: KindAuthTemporary, Endpoint: "api/token", Err: fmt.Errorf("decoding token response: %w", err)}
	}
	if payload.AccessToken == "" {
		return Token{}, &Error{Kind: KindAuthFatal, Endpoint: "api/token", Message: "token response missing access_token"}
	}

	lifetime := defaultTokenLifetime
	if payload.ExpiresIn > 0 {
		lifetime = time.Duration(payload.ExpiresIn) * time.Second
	}

	return Token{
		Value:     payload.AccessToken,
		ExpiresAt: time.Now().Add(lifetime),
	}, nil
}
