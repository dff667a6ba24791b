// package models defines the response shapes served by trackscope
package models

// TrackSummary is the projection of the first catalog match for a track/artist search.
type TrackSummary struct {
	TrackName   string  `json:"track_name"`
	ArtistName  string  `json:"artist_name"`
	AlbumName   string  `json:"album_name"`
	ReleaseDate string  `json:"release_date"`
	PreviewURL  *string `json:"preview_url"`
	SpotifyURL  string  `json:"spotify_url"`
	AlbumImage  *string `json:"album_image"`
}

// AlbumImage is the body of the album image lookup.
type AlbumImage struct {
	AlbumImage *string `json:"album_image"`
}

// PlaylistTrackList wraps a playlist listing. Entries use every artist, comma separated, as ArtistName.
type PlaylistTrackList struct {
	PlaylistTracks []TrackSummary `json:"playlist_tracks"`
}

// AudioFeatureSample holds the descriptors used for aggregation.
type AudioFeatureSample struct {
	TrackID      string  `json:"id"`
	Tempo        float64 `json:"tempo"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
	Key          int     `json:"key"` // pitch class, -1 when undetected
}

// TempoStats aggregates tempo in BPM.
type TempoStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
}

// AverageStat holds a single mean.
type AverageStat struct {
	Average float64 `json:"average"`
}

// PlaylistReport aggregates audio features and release years for one playlist.
type PlaylistReport struct {
	BPM           TempoStats        `json:"bpm"`
	Energy        AverageStat       `json:"energy"`
	Danceability  AverageStat       `json:"danceability"`
	Valence       AverageStat       `json:"valence"`
	Keys          map[int]int       `json:"keys"`
	ReleaseYears  map[int]int       `json:"release_years"`
	Images        map[string]string `json:"images"`
	TrackCount    int               `json:"track_count"`
	AnalyzedCount int               `json:"analyzed_count"`
}

// Chart names used as keys of [PlaylistReport.Images].
const (
	ChartBPM          = "bpm"
	ChartEnergy       = "energy"
	ChartDanceability = "danceability"
	ChartValence      = "valence"
	ChartKeys         = "keys"
	ChartReleaseYears = "release_years"
)

// ChartNames lists every chart of a report in render order.
var ChartNames = []string{ChartBPM, ChartEnergy, ChartDanceability, ChartValence, ChartKeys, ChartReleaseYears}
