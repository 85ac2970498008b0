package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/markusring/spotify-mcp/internal/logging"
)

// APIBaseURL is the Spotify Web API base.
const APIBaseURL = "https://api.spotify.com/v1"

const (
	// DefaultRequestTimeout bounds every upstream call so a stalled request
	// cannot occupy a worker indefinitely.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultCallAttempts bounds retries of rate-limited and 5xx responses.
	DefaultCallAttempts = 3

	// DefaultCallBackoff is the initial interval between retries of
	// transient failures.
	DefaultCallBackoff = 1 * time.Second

	// DefaultRetryAfterCap is the longest upstream-requested rate-limit
	// delay that is honored in-line. Longer delays surface immediately as
	// rate-limit errors instead of stalling a worker.
	DefaultRetryAfterCap = 30 * time.Second

	// Client-side rate limiting applied before every upstream attempt.
	defaultRateLimit = rate.Limit(10)
	defaultRateBurst = 20
)

// Client is the gateway to the Spotify Web API. Every call obtains a token
// from the token manager, applies client-side rate limiting, and retries
// transient upstream failures with bounded exponential backoff. Clients are
// stateless apart from the token caches and safe for concurrent use.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokens      *TokenManager
	userTokens  *UserTokenSource
	limiter     *rate.Limiter
	maxAttempts int
	backoffBase time.Duration
	retryCap    time.Duration
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL, used by tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserTokenSource enables user-scoped endpoints.
func WithUserTokenSource(u *UserTokenSource) ClientOption {
	return func(c *Client) { c.userTokens = u }
}

// WithCallAttempts bounds retries of transient call failures.
func WithCallAttempts(attempts int) ClientOption {
	return func(c *Client) { c.maxAttempts = attempts }
}

// WithCallBackoff sets the initial retry interval.
func WithCallBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoffBase = d }
}

// WithRetryAfterCap sets the longest honored Retry-After delay.
func WithRetryAfterCap(d time.Duration) ClientOption {
	return func(c *Client) { c.retryCap = d }
}

// WithRateLimit overrides the client-side request rate limit.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

// WithLogger sets the logger for request events.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a gateway backed by the given token manager.
func NewClient(tokens *TokenManager, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     APIBaseURL,
		httpClient:  &http.Client{Timeout: DefaultRequestTimeout},
		tokens:      tokens,
		limiter:     rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		maxAttempts: DefaultCallAttempts,
		backoffBase: DefaultCallBackoff,
		retryCap:    DefaultRetryAfterCap,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenManager exposes the app token manager for health and status reporting.
func (c *Client) TokenManager() *TokenManager {
	return c.tokens
}

// UserTokens exposes the user token source; may report unavailable.
func (c *Client) UserTokens() *UserTokenSource {
	return c.userTokens
}

// HasUserAuth reports whether user-scoped endpoints can be served.
func (c *Client) HasUserAuth() bool {
	return c.userTokens.Available()
}

// get performs a GET against the API and decodes the JSON response into
// target. A nil target discards the body. userAuth selects the user token
// source instead of the app token manager.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, userAuth bool, target interface{}) error {
	endpoint = strings.TrimLeft(endpoint, "/")

	reqURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.backoffBase

	transientAttempts := 0
	refreshed := false

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return classifyTransportError(endpoint, err)
		}

		token, err := c.token(ctx, userAuth)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return &Error{Kind: KindInvalidRequest, Endpoint: endpoint, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			transientAttempts++
			if transientAttempts < c.maxAttempts {
				delay := bo.NextBackOff()
				c.logger.Warn("upstream request failed, retrying",
					logging.Endpoint(endpoint),
					logging.Attempt(transientAttempts),
					logging.Err(err))
				if sleepErr := sleepCtx(ctx, delay); sleepErr == nil {
					continue
				}
			}
			return classifyTransportError(endpoint, err)
		}

		retry, result := c.handleResponse(resp, endpoint, userAuth, target, &refreshed)
		if !retry {
			return result
		}

		// result carries the would-be error if the retry budget runs out.
		var se *Error
		if errors.As(result, &se) && se.Kind == KindUpstreamAuth {
			// 401 path: the forced refresh happened in handleResponse;
			// retry immediately without consuming a transient attempt.
			continue
		}

		transientAttempts++
		if transientAttempts >= c.maxAttempts {
			return result
		}

		delay := bo.NextBackOff()
		if se != nil && se.Kind == KindRateLimited {
			if ra := se.retryAfter; ra > 0 {
				if ra > c.retryCap {
					return result
				}
				delay = ra
			}
		}

		c.logger.Warn("upstream returned transient status, backing off",
			logging.Endpoint(endpoint),
			logging.Attempt(transientAttempts),
			slog.Duration("delay", delay),
			slog.Int("status", se.statusOrZero()))
		if err := sleepCtx(ctx, delay); err != nil {
			return result
		}
	}
}

// handleResponse consumes resp and reports whether the call should be
// retried. When retry is true, result holds the error to surface if the
// retry budget is exhausted.
func (c *Client) handleResponse(resp *http.Response, endpoint string, userAuth bool, target interface{}, refreshed *bool) (retry bool, result error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return false, nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if target == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return false, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return false, &Error{Kind: KindUpstreamUnavailable, Endpoint: endpoint, Err: fmt.Errorf("decoding response: %w", err)}
		}
		return false, nil

	case resp.StatusCode == http.StatusUnauthorized:
		authErr := &Error{Kind: KindUpstreamAuth, Endpoint: endpoint, StatusCode: resp.StatusCode, Message: readErrorBody(resp)}
		if *refreshed {
			return false, authErr
		}
		// Stale token: force exactly one refresh of the source the call
		// used, and retry once.
		*refreshed = true
		if userAuth {
			c.userTokens.Invalidate()
		} else {
			c.tokens.Invalidate()
		}
		c.logger.Info("401 from upstream, forcing token refresh",
			logging.Endpoint(endpoint),
			slog.Bool("user_auth", userAuth))
		return true, authErr

	case resp.StatusCode == http.StatusTooManyRequests:
		rlErr := &Error{Kind: KindRateLimited, Endpoint: endpoint, StatusCode: resp.StatusCode, Message: readErrorBody(resp)}
		if ra := parseRetryAfter(resp.Header.Get("Retry-After")); ra > 0 {
			rlErr.retryAfter = ra
		}
		return true, rlErr

	case resp.StatusCode >= 500:
		return true, &Error{Kind: KindUpstreamUnavailable, Endpoint: endpoint, StatusCode: resp.StatusCode, Message: readErrorBody(resp)}

	default:
		return false, &Error{Kind: KindInvalidRequest, Endpoint: endpoint, StatusCode: resp.StatusCode, Message: readErrorBody(resp)}
	}
}

// token selects the app or user token source for the call.
func (c *Client) token(ctx context.Context, userAuth bool) (string, error) {
	if userAuth {
		return c.userTokens.Token(ctx)
	}
	return c.tokens.Token(ctx)
}

// readErrorBody captures a bounded slice of the response body for diagnostics.
func readErrorBody(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 800))
	return strings.TrimSpace(string(body))
}

// parseRetryAfter handles the delay-seconds form of the header. The HTTP-date
// form is not sent by the Spotify API.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// classifyTransportError maps request-level failures onto the taxonomy.
func classifyTransportError(endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Endpoint: endpoint, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTimeout, Endpoint: endpoint, Err: err}
	}
	return &Error{Kind: KindUpstreamUnavailable, Endpoint: endpoint, Err: err}
}

// sleepCtx waits for the delay or until the context is done.
func sleepCtx(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
