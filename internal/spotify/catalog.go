package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Search query types accepted by Search.
const (
	SearchTrack    = "track"
	SearchArtist   = "artist"
	SearchAlbum    = "album"
	SearchPlaylist = "playlist"
)

// Limit bounds applied to listing operations.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Search runs a catalog search for the given query type and returns the
// matching slice of SearchResults populated.
func (c *Client) Search(ctx context.Context, query, queryType string, limit int) (*SearchResults, error) {
	switch queryType {
	case SearchTrack, SearchArtist, SearchAlbum, SearchPlaylist:
	default:
		return nil, &Error{
			Kind:     KindInvalidRequest,
			Endpoint: "search",
			Message:  fmt.Sprintf("unsupported search type %q", queryType),
		}
	}
	if strings.TrimSpace(query) == "" {
		return nil, &Error{Kind: KindInvalidRequest, Endpoint: "search", Message: "query must not be empty"}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", queryType)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))

	var raw struct {
		Tracks struct {
			Items []apiTrack `json:"items"`
		} `json:"tracks"`
		Artists struct {
			Items []apiArtist `json:"items"`
		} `json:"artists"`
		Albums struct {
			Items []apiAlbum `json:"items"`
		} `json:"albums"`
		Playlists struct {
			Items []apiPlaylist `json:"items"`
		} `json:"playlists"`
	}
	if err := c.get(ctx, "search", params, false, &raw); err != nil {
		return nil, err
	}

	results := &SearchResults{}
	switch queryType {
	case SearchTrack:
		results.Tracks = make([]Track, 0, len(raw.Tracks.Items))
		for _, t := range raw.Tracks.Items {
			results.Tracks = append(results.Tracks, t.summary())
		}
	case SearchArtist:
		results.Artists = make([]Artist, 0, len(raw.Artists.Items))
		for _, a := range raw.Artists.Items {
			results.Artists = append(results.Artists, a.details())
		}
	case SearchAlbum:
		results.Albums = make([]Album, 0, len(raw.Albums.Items))
		for _, a := range raw.Albums.Items {
			results.Albums = append(results.Albums, a.summary())
		}
	case SearchPlaylist:
		results.Playlists = make([]Playlist, 0, len(raw.Playlists.Items))
		for _, p := range raw.Playlists.Items {
			results.Playlists = append(results.Playlists, p.summary())
		}
	}
	return results, nil
}

// Track returns the full details of a single track.
func (c *Client) Track(ctx context.Context, id string) (*TrackDetails, error) {
	if err := requireID("track", id); err != nil {
		return nil, err
	}
	var raw apiTrack
	if err := c.get(ctx, "tracks/"+url.PathEscape(id), nil, false, &raw); err != nil {
		return nil, err
	}
	return &TrackDetails{
		ID:      raw.ID,
		Name:    raw.Name,
		Artists: artistRefs(raw.Artists),
		Album: AlbumRef{
			ID:          raw.Album.ID,
			Name:        raw.Album.Name,
			ReleaseDate: raw.Album.ReleaseDate,
			Images:      toImages(raw.Album.Images),
		},
		DurationMS:       raw.DurationMS,
		Popularity:       raw.Popularity,
		PreviewURL:       raw.PreviewURL,
		Explicit:         raw.Explicit,
		ExternalURL:      raw.ExternalURLs.Spotify,
		AvailableMarkets: raw.AvailableMarkets,
	}, nil
}

// TrackAudioFeatures returns the audio analysis attributes of a track.
// Requires user authorization.
func (c *Client) TrackAudioFeatures(ctx context.Context, id string) (*AudioFeatures, error) {
	if err := requireID("track", id); err != nil {
		return nil, err
	}
	var features AudioFeatures
	if err := c.get(ctx, "audio-features/"+url.PathEscape(id), nil, true, &features); err != nil {
		return nil, err
	}
	return &features, nil
}

// Artist returns the full details of a single artist.
func (c *Client) Artist(ctx context.Context, id string) (*Artist, error) {
	if err := requireID("artist", id); err != nil {
		return nil, err
	}
	var raw apiArtist
	if err := c.get(ctx, "artists/"+url.PathEscape(id), nil, false, &raw); err != nil {
		return nil, err
	}
	artist := raw.details()
	return &artist, nil
}

// ArtistTopTracks returns an artist's most popular tracks in the given
// market.
func (c *Client) ArtistTopTracks(ctx context.Context, id, market string) ([]Track, error) {
	if err := requireID("artist", id); err != nil {
		return nil, err
	}
	if market == "" {
		market = "US"
	}
	params := url.Values{}
	params.Set("market", market)

	var raw struct {
		Tracks []apiTrack `json:"tracks"`
	}
	if err := c.get(ctx, "artists/"+url.PathEscape(id)+"/top-tracks", params, false, &raw); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(raw.Tracks))
	for _, t := range raw.Tracks {
		tracks = append(tracks, t.summary())
	}
	return tracks, nil
}

// ArtistAlbums returns an artist's albums, optionally filtered by include
// groups such as "album,single".
func (c *Client) ArtistAlbums(ctx context.Context, id, includeGroups string, limit int) ([]Album, error) {
	if err := requireID("artist", id); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	if includeGroups != "" {
		params.Set("include_groups", includeGroups)
	}

	var raw struct {
		Items []apiAlbum `json:"items"`
	}
	if err := c.get(ctx, "artists/"+url.PathEscape(id)+"/albums", params, false, &raw); err != nil {
		return nil, err
	}
	albums := make([]Album, 0, len(raw.Items))
	for _, a := range raw.Items {
		albums = append(albums, a.summary())
	}
	return albums, nil
}

// Album returns the full details of a single album.
func (c *Client) Album(ctx context.Context, id string) (*AlbumDetails, error) {
	if err := requireID("album", id); err != nil {
		return nil, err
	}
	var raw apiAlbum
	if err := c.get(ctx, "albums/"+url.PathEscape(id), nil, false, &raw); err != nil {
		return nil, err
	}
	copyrights := make([]string, 0, len(raw.Copyrights))
	for _, cr := range raw.Copyrights {
		copyrights = append(copyrights, cr.Text)
	}
	return &AlbumDetails{
		ID:          raw.ID,
		Name:        raw.Name,
		Artists:     artistRefs(raw.Artists),
		ReleaseDate: raw.ReleaseDate,
		TotalTracks: raw.TotalTracks,
		Genres:      raw.Genres,
		Label:       raw.Label,
		Popularity:  raw.Popularity,
		Images:      toImages(raw.Images),
		ExternalURL: raw.ExternalURLs.Spotify,
		Copyrights:  copyrights,
	}, nil
}

// AlbumTracks returns the track listing of an album.
func (c *Client) AlbumTracks(ctx context.Context, id string, limit int) ([]AlbumTrack, error) {
	if err := requireID("album", id); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))

	var raw struct {
		Items []apiTrack `json:"items"`
	}
	if err := c.get(ctx, "albums/"+url.PathEscape(id)+"/tracks", params, false, &raw); err != nil {
		return nil, err
	}
	tracks := make([]AlbumTrack, 0, len(raw.Items))
	for _, t := range raw.Items {
		tracks = append(tracks, AlbumTrack{
			ID:          t.ID,
			Name:        t.Name,
			TrackNumber: t.TrackNumber,
			DurationMS:  t.DurationMS,
			Explicit:    t.Explicit,
			PreviewURL:  t.PreviewURL,
			ExternalURL: t.ExternalURLs.Spotify,
		})
	}
	return tracks, nil
}

// Playlist returns the full details of a single playlist.
func (c *Client) Playlist(ctx context.Context, id string) (*PlaylistDetails, error) {
	if err := requireID("playlist", id); err != nil {
		return nil, err
	}
	var raw apiPlaylist
	if err := c.get(ctx, "playlists/"+url.PathEscape(id), nil, false, &raw); err != nil {
		return nil, err
	}
	return &PlaylistDetails{
		ID:            raw.ID,
		Name:          raw.Name,
		Description:   raw.Description,
		Owner:         OwnerRef{ID: raw.Owner.ID, DisplayName: raw.Owner.DisplayName},
		Public:        raw.Public,
		Collaborative: raw.Collaborative,
		Followers:     raw.Followers.Total,
		TracksTotal:   raw.Tracks.Total,
		Images:        toImages(raw.Images),
		ExternalURL:   raw.ExternalURLs.Spotify,
	}, nil
}

// PlaylistTracks returns the track entries of a playlist, preserving the
// time each track was added.
func (c *Client) PlaylistTracks(ctx context.Context, id string, limit, offset int) ([]Track, error) {
	if err := requireID("playlist", id); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var raw struct {
		Items []struct {
			AddedAt string   `json:"added_at"`
			Track   apiTrack `json:"track"`
		} `json:"items"`
	}
	if err := c.get(ctx, "playlists/"+url.PathEscape(id)+"/tracks", params, false, &raw); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(raw.Items))
	for _, item := range raw.Items {
		// Local files and removed tracks come back without an ID.
		if item.Track.ID == "" {
			continue
		}
		t := item.Track.summary()
		t.AddedAt = item.AddedAt
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// RecommendationSeeds carries the seed entities for Recommendations. At
// least one seed across all three lists is required; the upstream accepts
// at most five combined.
type RecommendationSeeds struct {
	Artists []string
	Tracks  []string
	Genres  []string
}

func (s RecommendationSeeds) count() int {
	return len(s.Artists) + len(s.Tracks) + len(s.Genres)
}

// Recommendations returns tracks similar to the given seeds. Requires user
// authorization.
func (c *Client) Recommendations(ctx context.Context, seeds RecommendationSeeds, limit int) ([]Track, error) {
	if seeds.count() == 0 {
		return nil, &Error{
			Kind:     KindInvalidRequest,
			Endpoint: "recommendations",
			Message:  "at least one seed artist, track or genre is required",
		}
	}
	if seeds.count() > 5 {
		return nil, &Error{
			Kind:     KindInvalidRequest,
			Endpoint: "recommendations",
			Message:  "at most 5 seeds are accepted across artists, tracks and genres",
		}
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	if len(seeds.Artists) > 0 {
		params.Set("seed_artists", strings.Join(seeds.Artists, ","))
	}
	if len(seeds.Tracks) > 0 {
		params.Set("seed_tracks", strings.Join(seeds.Tracks, ","))
	}
	if len(seeds.Genres) > 0 {
		params.Set("seed_genres", strings.Join(seeds.Genres, ","))
	}

	var raw struct {
		Tracks []apiTrack `json:"tracks"`
	}
	if err := c.get(ctx, "recommendations", params, true, &raw); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(raw.Tracks))
	for _, t := range raw.Tracks {
		tracks = append(tracks, t.summary())
	}
	return tracks, nil
}

// AvailableGenres returns the genre seeds accepted by Recommendations.
// Requires user authorization.
func (c *Client) AvailableGenres(ctx context.Context) ([]string, error) {
	var raw struct {
		Genres []string `json:"genres"`
	}
	if err := c.get(ctx, "recommendations/available-genre-seeds", nil, true, &raw); err != nil {
		return nil, err
	}
	return raw.Genres, nil
}

// NewReleases returns recently released albums, optionally scoped to a
// country.
func (c *Client) NewReleases(ctx context.Context, country string, limit int) ([]Album, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	if country != "" {
		params.Set("country", country)
	}

	var raw struct {
		Albums struct {
			Items []apiAlbum `json:"items"`
		} `json:"albums"`
	}
	if err := c.get(ctx, "browse/new-releases", params, false, &raw); err != nil {
		return nil, err
	}
	albums := make([]Album, 0, len(raw.Albums.Items))
	for _, a := range raw.Albums.Items {
		albums = append(albums, a.summary())
	}
	return albums, nil
}

// FeaturedPlaylists returns the playlists currently featured on the browse
// page, with the upstream-provided heading message.
func (c *Client) FeaturedPlaylists(ctx context.Context, country string, limit int) (string, []Playlist, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	if country != "" {
		params.Set("country", country)
	}

	var raw struct {
		Message   string `json:"message"`
		Playlists struct {
			Items []apiPlaylist `json:"items"`
		} `json:"playlists"`
	}
	if err := c.get(ctx, "browse/featured-playlists", params, false, &raw); err != nil {
		return "", nil, err
	}
	playlists := make([]Playlist, 0, len(raw.Playlists.Items))
	for _, p := range raw.Playlists.Items {
		playlists = append(playlists, p.summary())
	}
	return raw.Message, playlists, nil
}

// Categories returns the browse categories, optionally scoped to a country.
func (c *Client) Categories(ctx context.Context, country string, limit int) ([]Category, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	if country != "" {
		params.Set("country", country)
	}

	var raw struct {
		Categories struct {
			Items []apiCategory `json:"items"`
		} `json:"categories"`
	}
	if err := c.get(ctx, "browse/categories", params, false, &raw); err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(raw.Categories.Items))
	for _, cat := range raw.Categories.Items {
		categories = append(categories, cat.projection())
	}
	return categories, nil
}

// CategoryPlaylists returns the playlists belonging to a browse category.
func (c *Client) CategoryPlaylists(ctx context.Context, categoryID string, limit int) ([]Playlist, error) {
	if err := requireID("category", categoryID); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))

	var raw struct {
		Playlists struct {
			Items []apiPlaylist `json:"items"`
		} `json:"playlists"`
	}
	if err := c.get(ctx, "browse/categories/"+url.PathEscape(categoryID)+"/playlists", params, false, &raw); err != nil {
		return nil, err
	}
	playlists := make([]Playlist, 0, len(raw.Playlists.Items))
	for _, p := range raw.Playlists.Items {
		playlists = append(playlists, p.summary())
	}
	return playlists, nil
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return &Error{
			Kind:    KindInvalidRequest,
			Message: fmt.Sprintf("%s id must not be empty", kind),
		}
	}
	return nil
}
