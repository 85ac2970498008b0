// Package artist_tools provides MCP (Model Context Protocol) tools for
// exploring Spotify artists.
//
// Tools:
//   - get_artist_details: Genres, popularity, follower count, images
//   - get_artist_top_tracks: Most popular tracks in a market
//   - get_artist_albums: Discography filtered by release group
package artist_tools
