// Package album_tools provides MCP (Model Context Protocol) tools for
// inspecting Spotify albums.
//
// Tools:
//   - get_album_details: Release date, label, genres, copyrights, images
//   - get_album_tracks: Track listing with durations and preview links
package album_tools
