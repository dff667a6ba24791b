// package tasks implements the catalog operations served over HTTP and the CLI.
//
// The core abstraction is Engine, which turns catalog responses into the trackscope response shapes.
// Playlist analysis emits progress updates via channels for non-blocking status reporting to the CLI.
package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackscope/internal/charts"
	"github.com/desertthunder/trackscope/internal/models"
	"github.com/desertthunder/trackscope/internal/services"
	"github.com/desertthunder/trackscope/internal/shared"
)

// Engine defines the request-scoped catalog operations.
type Engine interface {
	// TrackInfo returns the first catalog match for a track/artist pair.
	TrackInfo(ctx context.Context, trackName, artistName string) (*models.TrackSummary, error)

	// AlbumImage returns the album cover URL of the first match, nil when the album has no images.
	AlbumImage(ctx context.Context, trackName, artistName string) (*models.AlbumImage, error)

	// PlaylistTracks lists every non-null track of a playlist in catalog order.
	PlaylistTracks(ctx context.Context, playlistID string) (*models.PlaylistTrackList, error)

	// AnalyzePlaylist aggregates audio features and release years and renders the report charts.
	AnalyzePlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) (*models.PlaylistReport, error)
}

// CatalogEngine implements Engine on top of a [services.Catalog] and a [charts.Renderer].
//
// It keeps no per-request state and is safe for concurrent use when its dependencies are.
type CatalogEngine struct {
	catalog  services.Catalog
	renderer charts.Renderer
	logger   *log.Logger
}

// NewCatalogEngine creates a new CatalogEngine. A nil logger discards output.
func NewCatalogEngine(catalog services.Catalog, renderer charts.Renderer, logger *log.Logger) *CatalogEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CatalogEngine{
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

// TrackInfo searches with a field-filtered query and projects the first match.
func (e *CatalogEngine) TrackInfo(ctx context.Context, trackName, artistName string) (*models.TrackSummary, error) {
	track, err := e.firstMatch(ctx, trackName, artistName)
	if err != nil {
		return nil, err
	}
	summary := services.ToTrackSummary(*track)
	return &summary, nil
}

// AlbumImage runs the same lookup as TrackInfo and keeps only the cover.
func (e *CatalogEngine) AlbumImage(ctx context.Context, trackName, artistName string) (*models.AlbumImage, error) {
	track, err := e.firstMatch(ctx, trackName, artistName)
	if err != nil {
		return nil, err
	}
	return &models.AlbumImage{AlbumImage: services.FirstImageURL(track.Album.Images)}, nil
}

func (e *CatalogEngine) firstMatch(ctx context.Context, trackName, artistName string) (*services.SpotifyTrack, error) {
	if strings.TrimSpace(trackName) == "" {
		return nil, fmt.Errorf("%w: track_name", shared.ErrMissingArgument)
	}
	if strings.TrimSpace(artistName) == "" {
		return nil, fmt.Errorf("%w: artist_name", shared.ErrMissingArgument)
	}

	result, err := e.catalog.Search(ctx, services.TrackQuery(trackName, artistName), services.SearchTypeTrack, 1)
	if err != nil {
		return nil, err
	}
	if len(result.Tracks.Items) == 0 {
		return nil, fmt.Errorf("%w: %q by %q", shared.ErrTrackNotFound, trackName, artistName)
	}
	return &result.Tracks.Items[0], nil
}

// PlaylistTracks skips null track references and joins artist names.
func (e *CatalogEngine) PlaylistTracks(ctx context.Context, playlistID string) (*models.PlaylistTrackList, error) {
	if strings.TrimSpace(playlistID) == "" {
		return nil, fmt.Errorf("%w: playlist_id", shared.ErrMissingArgument)
	}

	items, err := e.catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	list := &models.PlaylistTrackList{PlaylistTracks: make([]models.TrackSummary, 0, len(items))}
	for _, item := range items {
		if item.Track == nil {
			continue
		}
		list.PlaylistTracks = append(list.PlaylistTracks, services.ToPlaylistTrack(*item.Track))
	}

	e.logger.Debug("listed playlist", "playlist_id", playlistID, "items", len(items), "tracks", len(list.PlaylistTracks))
	return list, nil
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
