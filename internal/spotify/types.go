package spotify

// Result types returned by the catalog methods. These are trimmed projections
// of the upstream responses carrying the fields the tools expose; the full
// upstream objects are not reproduced.

// Image is an image resource attached to albums, artists and playlists.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// ArtistRef identifies an artist on a track or album.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AlbumRef identifies the album a track belongs to.
type AlbumRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

// OwnerRef identifies a playlist owner.
type OwnerRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Track is a track summary as returned in search results, top tracks and
// playlist listings.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album,omitempty"`
	DurationMS  int      `json:"duration_ms,omitempty"`
	Popularity  int      `json:"popularity"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	ExternalURL string   `json:"external_url,omitempty"`
	AddedAt     string   `json:"added_at,omitempty"`
}

// TrackDetails is the full projection returned by the track details endpoint.
type TrackDetails struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Artists          []ArtistRef `json:"artists"`
	Album            AlbumRef    `json:"album"`
	DurationMS       int         `json:"duration_ms"`
	Popularity       int         `json:"popularity"`
	PreviewURL       string      `json:"preview_url,omitempty"`
	Explicit         bool        `json:"explicit"`
	ExternalURL      string      `json:"external_url,omitempty"`
	AvailableMarkets []string    `json:"available_markets,omitempty"`
}

// AudioFeatures are the tunable musical attributes of a track.
type AudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Key              int     `json:"key"`
	Loudness         float64 `json:"loudness"`
	Mode             int     `json:"mode"`
	Speechiness      float64 `json:"speechiness"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	DurationMS       int     `json:"duration_ms"`
	TimeSignature    int     `json:"time_signature"`
}

// Artist is the artist projection returned by search and artist details.
type Artist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Genres      []string `json:"genres,omitempty"`
	Popularity  int      `json:"popularity"`
	Followers   int      `json:"followers"`
	Images      []Image  `json:"images,omitempty"`
	ExternalURL string   `json:"external_url,omitempty"`
}

// Album is an album summary as returned by search, artist albums and new
// releases.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists,omitempty"`
	AlbumType   string   `json:"album_type,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	TotalTracks int      `json:"total_tracks,omitempty"`
	ExternalURL string   `json:"external_url,omitempty"`
}

// AlbumDetails is the full projection returned by the album details endpoint.
type AlbumDetails struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []ArtistRef `json:"artists"`
	ReleaseDate string      `json:"release_date,omitempty"`
	TotalTracks int         `json:"total_tracks"`
	Genres      []string    `json:"genres,omitempty"`
	Label       string      `json:"label,omitempty"`
	Popularity  int         `json:"popularity"`
	Images      []Image     `json:"images,omitempty"`
	ExternalURL string      `json:"external_url,omitempty"`
	Copyrights  []string    `json:"copyrights,omitempty"`
}

// AlbumTrack is a track entry within an album.
type AlbumTrack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
	DurationMS  int    `json:"duration_ms"`
	Explicit    bool   `json:"explicit"`
	PreviewURL  string `json:"preview_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// Playlist is a playlist summary as returned by search and category listings.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	TracksTotal int    `json:"tracks_total"`
	Public      *bool  `json:"public,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// PlaylistDetails is the full projection returned by the playlist details
// endpoint.
type PlaylistDetails struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Owner         OwnerRef `json:"owner"`
	Public        *bool    `json:"public,omitempty"`
	Collaborative bool     `json:"collaborative"`
	Followers     int      `json:"followers"`
	TracksTotal   int      `json:"tracks_total"`
	Images        []Image  `json:"images,omitempty"`
	ExternalURL   string   `json:"external_url,omitempty"`
}

// Category is a browse category.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icons []Image `json:"icons,omitempty"`
}

// SearchResults holds the slice matching the requested search type; the
// other slices stay nil.
type SearchResults struct {
	Tracks    []Track    `json:"tracks,omitempty"`
	Artists   []Artist   `json:"artists,omitempty"`
	Albums    []Album    `json:"albums,omitempty"`
	Playlists []Playlist `json:"playlists,omitempty"`
}

// Count returns the number of items for the populated search type.
func (r *SearchResults) Count() int {
	return len(r.Tracks) + len(r.Artists) + len(r.Albums) + len(r.Playlists)
}

// Upstream response objects, following the Web API reference. Only the fields
// the projections need are declared.

type apiImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type apiFollowers struct {
	Total int `json:"total"`
}

type apiExternalURLs struct {
	Spotify string `json:"spotify"`
}

type apiArtist struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Genres       []string        `json:"genres"`
	Popularity   int             `json:"popularity"`
	Followers    apiFollowers    `json:"followers"`
	Images       []apiImage      `json:"images"`
	ExternalURLs apiExternalURLs `json:"external_urls"`
}

type apiCopyright struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type apiAlbum struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	AlbumType    string          `json:"album_type"`
	Artists      []apiArtist     `json:"artists"`
	ReleaseDate  string          `json:"release_date"`
	TotalTracks  int             `json:"total_tracks"`
	Genres       []string        `json:"genres"`
	Label        string          `json:"label"`
	Popularity   int             `json:"popularity"`
	Images       []apiImage      `json:"images"`
	Copyrights   []apiCopyright  `json:"copyrights"`
	ExternalURLs apiExternalURLs `json:"external_urls"`
}

type apiTrack struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Artists          []apiArtist     `json:"artists"`
	Album            apiAlbum        `json:"album"`
	DurationMS       int             `json:"duration_ms"`
	Popularity       int             `json:"popularity"`
	Explicit         bool            `json:"explicit"`
	TrackNumber      int             `json:"track_number"`
	PreviewURL       string          `json:"preview_url"`
	AvailableMarkets []string        `json:"available_markets"`
	ExternalURLs     apiExternalURLs `json:"external_urls"`
}

type apiOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type apiPlaylist struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Owner         apiOwner     `json:"owner"`
	Public        *bool        `json:"public"`
	Collaborative bool         `json:"collaborative"`
	Followers     apiFollowers `json:"followers"`
	Tracks        struct {
		Total int `json:"total"`
	} `json:"tracks"`
	Images       []apiImage      `json:"images"`
	ExternalURLs apiExternalURLs `json:"external_urls"`
}

type apiCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Icons []apiImage `json:"icons"`
}

// Projection helpers.

func artistNames(artists []apiArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

func artistRefs(artists []apiArtist) []ArtistRef {
	refs := make([]ArtistRef, 0, len(artists))
	for _, a := range artists {
		refs = append(refs, ArtistRef{ID: a.ID, Name: a.Name})
	}
	return refs
}

func toImages(images []apiImage) []Image {
	if len(images) == 0 {
		return nil
	}
	out := make([]Image, 0, len(images))
	for _, img := range images {
		out = append(out, Image{URL: img.URL, Height: img.Height, Width: img.Width})
	}
	return out
}

func (t apiTrack) summary() Track {
	return Track{
		ID:          t.ID,
		Name:        t.Name,
		Artists:     artistNames(t.Artists),
		Album:       t.Album.Name,
		DurationMS:  t.DurationMS,
		Popularity:  t.Popularity,
		PreviewURL:  t.PreviewURL,
		ExternalURL: t.ExternalURLs.Spotify,
	}
}

func (a apiArtist) details() Artist {
	return Artist{
		ID:          a.ID,
		Name:        a.Name,
		Genres:      a.Genres,
		Popularity:  a.Popularity,
		Followers:   a.Followers.Total,
		Images:      toImages(a.Images),
		ExternalURL: a.ExternalURLs.Spotify,
	}
}

func (a apiAlbum) summary() Album {
	return Album{
		ID:          a.ID,
		Name:        a.Name,
		Artists:     artistNames(a.Artists),
		AlbumType:   a.AlbumType,
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		ExternalURL: a.ExternalURLs.Spotify,
	}
}

func (p apiPlaylist) summary() Playlist {
	owner := p.Owner.DisplayName
	if owner == "" {
		owner = p.Owner.ID
	}
	return Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       owner,
		TracksTotal: p.Tracks.Total,
		Public:      p.Public,
		ExternalURL: p.ExternalURLs.Spotify,
	}
}

func (c apiCategory) projection() Category {
	return Category{ID: c.ID, Name: c.Name, Icons: toImages(c.Icons)}
}
