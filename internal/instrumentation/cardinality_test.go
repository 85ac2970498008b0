package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaOf(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"search", AreaSearch},
		{"tracks/11dFghVXANMlKmJXsNCQ", AreaTracks},
		{"audio-features/11dFghVXANMlKmJXsNCQ", AreaTracks},
		{"artists/0TnOYISbd1XYRBk9myaseg/top-tracks", AreaArtists},
		{"albums/4aawyAB9vmqN3uQ7FjRGTy/tracks", AreaAlbums},
		{"playlists/37i9dQZF1DXcBWIGoYBM5M", AreaPlaylists},
		{"browse/new-releases", AreaBrowse},
		{"browse/categories/rock/playlists", AreaBrowse},
		{"recommendations", AreaRecommendations},
		{"recommendations/available-genre-seeds", AreaRecommendations},
		{"/search", AreaSearch},
		{"", StatusUnknown},
		{"me/player", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, AreaOf(tt.endpoint))
		})
	}
}
