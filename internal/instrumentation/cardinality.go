package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with upstream endpoint paths.

// AreaOf reduces a Spotify Web API endpoint path to its stable area label.
// Resource ids embedded in the path are dropped so that metric labels stay
// bounded.
//
// Example:
//
//	AreaOf("search")                     // "search"
//	AreaOf("tracks/11dFghVXANMlKmJXsNCQ") // "tracks"
//	AreaOf("audio-features/11dFgh")       // "tracks"
//	AreaOf("browse/new-releases")         // "browse"
//	AreaOf("")                            // "unknown"
func AreaOf(endpoint string) string {
	endpoint = strings.TrimLeft(endpoint, "/")
	if endpoint == "" {
		return StatusUnknown
	}

	head := endpoint
	if i := strings.IndexByte(endpoint, '/'); i >= 0 {
		head = endpoint[:i]
	}

	switch head {
	case "search":
		return AreaSearch
	case "tracks", "audio-features":
		return AreaTracks
	case "artists":
		return AreaArtists
	case "albums":
		return AreaAlbums
	case "playlists":
		return AreaPlaylists
	case "browse":
		return AreaBrowse
	case "recommendations":
		return AreaRecommendations
	default:
		return StatusUnknown
	}
}
