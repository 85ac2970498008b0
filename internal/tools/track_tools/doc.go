// Package track_tools provides MCP (Model Context Protocol) tools for
// inspecting individual Spotify tracks.
//
// Tools:
//   - get_track_details: Track metadata including album, duration, popularity
//   - get_track_audio_features: Tempo, key, danceability, energy and other
//     musical characteristics (requires a configured user token)
package track_tools
