// Package discovery_tools provides MCP (Model Context Protocol) tools for
// Spotify's recommendation engine.
//
// Tools:
//   - get_music_recommendations: Tracks similar to seed artists, tracks, or genres
//   - get_available_genres: Genre seeds accepted by the recommendation engine
//
// Both tools hit user-scoped endpoints and require a configured user token.
package discovery_tools
