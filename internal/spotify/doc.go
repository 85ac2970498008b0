// Package spotify provides the client for the Spotify Web API.
//
// The package is organized in dependency order:
//
//   - Credentials holds the application client id/secret, sourced once at
//     startup and immutable for the process lifetime.
//   - TokenManager exchanges credentials for a bearer token via the
//     client-credentials flow, caches it in memory, and renews it before
//     expiry. Concurrent refreshes are coalesced into a single upstream
//     exchange.
//   - UserTokenSource serves endpoints that require a user token (audio
//     features, recommendations, genre seeds) from a configured refresh
//     token.
//   - Client maps each catalog operation to one upstream HTTP call,
//     attaching the current token and translating upstream failures into
//     the error taxonomy in errors.go. Rate limits and transient upstream
//     failures are retried with bounded exponential backoff.
//
// All blocking operations take a context and respect its deadline.
package spotify
