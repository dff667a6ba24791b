package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/trackscope/internal/models"
)

// TrackQuery builds the field-filtered search query for a track/artist pair.
func TrackQuery(trackName, artistName string) string {
	return fmt.Sprintf("track:%s artist:%s", strings.TrimSpace(trackName), strings.TrimSpace(artistName))
}

// ParsePlaylistID extracts the playlist id from a spotify:playlist: URI or an open.spotify.com link.
// Anything else is returned trimmed.
func ParsePlaylistID(raw string) string {
	s := strings.TrimSpace(raw)
	if id, ok := strings.CutPrefix(s, "spotify:playlist:"); ok {
		return id
	}

	u, err := url.Parse(s)
	if err != nil || !isSpotifyHost(u.Hostname()) {
		return s
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part == "playlist" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return s
}

func isSpotifyHost(host string) bool {
	return host == "spotify.com" || strings.HasSuffix(host, ".spotify.com")
}

// JoinArtists renders every artist name separated by ", ".
func JoinArtists(artists []SpotifyArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// FirstImageURL returns the first image URL, or nil when there are none.
func FirstImageURL(images []SpotifyImage) *string {
	if len(images) == 0 {
		return nil
	}
	u := images[0].URL
	return &u
}

// ToTrackSummary projects a search match. Only the first artist is kept.
func ToTrackSummary(t SpotifyTrack) models.TrackSummary {
	summary := toSummary(t)
	if len(t.Artists) > 0 {
		summary.ArtistName = t.Artists[0].Name
	}
	return summary
}

// ToPlaylistTrack projects a playlist entry with all artists joined.
func ToPlaylistTrack(t SpotifyTrack) models.TrackSummary {
	summary := toSummary(t)
	summary.ArtistName = JoinArtists(t.Artists)
	return summary
}

// ToAudioFeatureSample keeps the descriptors used for aggregation.
func ToAudioFeatureSample(f SpotifyAudioFeatures) models.AudioFeatureSample {
	return models.AudioFeatureSample{
		TrackID:      f.ID,
		Tempo:        f.Tempo,
		Energy:       f.Energy,
		Danceability: f.Danceability,
		Valence:      f.Valence,
		Key:          f.Key,
	}
}

func toSummary(t SpotifyTrack) models.TrackSummary {
	return models.TrackSummary{
		TrackName:   t.Name,
		AlbumName:   t.Album.Name,
		ReleaseDate: t.Album.ReleaseDate,
		PreviewURL:  t.PreviewURL,
		SpotifyURL:  t.ExternalURLs.Spotify,
		AlbumImage:  FirstImageURL(t.Album.Images),
	}
}
