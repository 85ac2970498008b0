// Package playlist_tools provides MCP (Model Context Protocol) tools for
// reading public Spotify playlists.
//
// Tools:
//   - get_playlist_details: Description, owner, follower and track counts
//   - get_playlist_tracks: Paged track listing; local files are skipped
package playlist_tools
