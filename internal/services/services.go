// package services defines the [Catalog] interface for the upstream music catalog
//
// Spotify Web API
package services

import (
	"context"
)

// Catalog defines the lookups trackscope needs from an upstream music catalog.
//
// Implementations must be safe for concurrent use: one instance is shared by every request.
type Catalog interface {
	// Search runs a catalog search and returns at most limit items of searchType.
	Search(ctx context.Context, query, searchType string, limit int) (*SearchResult, error)

	// PlaylistTracks returns every item of a playlist in catalog order. Items may carry a nil Track.
	PlaylistTracks(ctx context.Context, playlistID string) ([]SpotifyPlaylistItem, error)

	// AudioFeatures returns one entry per id, in the same order. Entries are nil when the
	// catalog has no features for that track.
	AudioFeatures(ctx context.Context, trackIDs []string) ([]*SpotifyAudioFeatures, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}

// SearchTypeTrack restricts a search to tracks.
const SearchTypeTrack = "track"
