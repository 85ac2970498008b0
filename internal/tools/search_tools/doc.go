// Package search_tools provides MCP (Model Context Protocol) tools for
// searching the Spotify catalog.
//
// It exposes a single tool:
//   - search_music: Search for tracks, artists, albums, or playlists
//
// Results are trimmed projections of the Web API response (IDs, names,
// popularity, links) returned as indented JSON.
package search_tools
