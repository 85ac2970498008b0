// Package browse_tools provides MCP (Model Context Protocol) tools for
// Spotify's editorial browse pages.
//
// Tools:
//   - get_new_releases: Recently released albums
//   - get_featured_playlists: Playlists featured on the browse page
//   - get_categories: Browse categories
//   - get_category_playlists: Playlists within a category
package browse_tools
