// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/desertthunder/trackscope/internal/charts"
	"github.com/desertthunder/trackscope/internal/services"
)

// MockCatalog is a test double for [services.Catalog]
type MockCatalog struct {
	mu sync.Mutex

	SearchResult     *services.SearchResult
	SearchErr        error
	Playlists        map[string][]services.SpotifyPlaylistItem
	PlaylistErr      error
	Features         map[string]*services.SpotifyAudioFeatures
	FeaturesErr      error
	Queries          []string
	FeatureRequests  [][]string
	PlaylistRequests []string
}

func (m *MockCatalog) Search(ctx context.Context, query, searchType string, limit int) (*services.SearchResult, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if m.SearchResult == nil {
		return &services.SearchResult{}, nil
	}
	return m.SearchResult, nil
}

func (m *MockCatalog) PlaylistTracks(ctx context.Context, playlistID string) ([]services.SpotifyPlaylistItem, error) {
	m.mu.Lock()
	m.PlaylistRequests = append(m.PlaylistRequests, playlistID)
	m.mu.Unlock()

	if m.PlaylistErr != nil {
		return nil, m.PlaylistErr
	}
	return m.Playlists[playlistID], nil
}

// AudioFeatures returns Features[id] for every id, nil when absent.
func (m *MockCatalog) AudioFeatures(ctx context.Context, trackIDs []string) ([]*services.SpotifyAudioFeatures, error) {
	m.mu.Lock()
	m.FeatureRequests = append(m.FeatureRequests, trackIDs)
	m.mu.Unlock()

	if m.FeaturesErr != nil {
		return nil, m.FeaturesErr
	}
	out := make([]*services.SpotifyAudioFeatures, len(trackIDs))
	for i, id := range trackIDs {
		out[i] = m.Features[id]
	}
	return out, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// StubRenderer is a [charts.Renderer] that records calls and returns fixed data URIs.
type StubRenderer struct {
	mu         sync.Mutex
	Histograms map[string][]float64
	Pies       map[string][]charts.Slice
	Err        error
}

func NewStubRenderer() *StubRenderer {
	return &StubRenderer{Histograms: map[string][]float64{}, Pies: map[string][]charts.Slice{}}
}

func (s *StubRenderer) Histogram(title, xLabel string, sample []float64) (string, error) {
	if len(sample) == 0 {
		return "", charts.ErrEmptySample
	}
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Histograms[title] = sample
	return charts.EncodeDataURI([]byte(title)), nil
}

// EmptyHistogram records title with a nil sample.
func (s *StubRenderer) EmptyHistogram(title, xLabel string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Histograms[title] = nil
	return charts.EncodeDataURI([]byte(title)), nil
}

func (s *StubRenderer) Pie(title string, slices []charts.Slice) (string, error) {
	if len(slices) == 0 {
		return "", charts.ErrEmptySample
	}
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pies[title] = slices
	return charts.EncodeDataURI([]byte(title)), nil
}

// Track builds a catalog track with one album image per imageURL.
func Track(id, name, releaseDate string, artists []string, imageURLs ...string) *services.SpotifyTrack {
	t := &services.SpotifyTrack{
		ID:    id,
		Name:  name,
		Album: services.SpotifyAlbum{Name: name + " (album)", ReleaseDate: releaseDate},
	}
	t.ExternalURLs.Spotify = "https://open.spotify.com/track/" + id
	for _, a := range artists {
		t.Artists = append(t.Artists, services.SpotifyArtist{Name: a})
	}
	for _, u := range imageURLs {
		t.Album.Images = append(t.Album.Images, services.SpotifyImage{URL: u})
	}
	return t
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
