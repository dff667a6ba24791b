package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/desertthunder/trackscope/internal/models"
	"github.com/desertthunder/trackscope/internal/services"
	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/desertthunder/trackscope/internal/tasks"
	tu "github.com/desertthunder/trackscope/internal/testing"
	"github.com/goccy/go-json"
)

func get(t *testing.T, h http.Handler, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func trackQuery(track, artist string) url.Values {
	q := url.Values{}
	if track != "" {
		q.Set("track_name", track)
	}
	if artist != "" {
		q.Set("artist_name", artist)
	}
	return q
}

func playlistQuery(id string) url.Values {
	return url.Values{"playlist_id": {id}}
}

func matchResult(tracks ...*services.SpotifyTrack) *services.SearchResult {
	result := &services.SearchResult{}
	for _, tr := range tracks {
		result.Tracks.Items = append(result.Tracks.Items, *tr)
	}
	return result
}

func catalogRouter(t *testing.T, catalog *tu.MockCatalog) http.Handler {
	t.Helper()
	return newTestRouter(t, nil, tasks.NewCatalogEngine(catalog, tu.NewStubRenderer(), nil))
}

func TestTrackInfoHandler(t *testing.T) {
	t.Run("returns the first match", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			SearchResult: matchResult(tu.Track("t1", "Yellow", "2000-06-26", []string{"Coldplay", "Other"}, "https://img/y")),
		}
		rec := get(t, catalogRouter(t, catalog), "/track-info", trackQuery("Yellow", "Coldplay"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var summary models.TrackSummary
		if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if summary.TrackName != "Yellow" || summary.ArtistName != "Coldplay" {
			t.Errorf("unexpected summary %+v", summary)
		}
		if summary.AlbumImage == nil || *summary.AlbumImage != "https://img/y" {
			t.Errorf("unexpected album image %v", summary.AlbumImage)
		}
		if summary.PreviewURL != nil {
			t.Errorf("expected null preview url, got %v", *summary.PreviewURL)
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		router := catalogRouter(t, catalog)
		tests := []struct {
			name  string
			query url.Values
		}{
			{"no params", url.Values{}},
			{"no artist", trackQuery("Yellow", "")},
			{"no track", trackQuery("", "Coldplay")},
			{"blank track", trackQuery("   ", "Coldplay")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := get(t, router, "/track-info", tt.query)
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", rec.Code)
				}
				if resp := decodeError(t, rec.Body); resp.Error != "invalid request" || resp.Detail == "" {
					t.Errorf("unexpected body %+v", resp)
				}
			})
		}
		if len(catalog.Queries) != 0 {
			t.Errorf("invalid requests reached the catalog: %v", catalog.Queries)
		}
	})

	t.Run("no match is 404 with an error field", func(t *testing.T) {
		rec := get(t, catalogRouter(t, &tu.MockCatalog{}), "/track-info", trackQuery("Nothing", "Nobody"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if resp := decodeError(t, rec.Body); resp.Error != "not found" {
			t.Errorf("unexpected body %+v", resp)
		}
	})

	t.Run("upstream fault is 502", func(t *testing.T) {
		catalog := &tu.MockCatalog{SearchErr: &services.APIError{StatusCode: http.StatusServiceUnavailable, Message: "down"}}
		rec := get(t, catalogRouter(t, catalog), "/track-info", trackQuery("Yellow", "Coldplay"))

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		if resp := decodeError(t, rec.Body); resp.Error != "upstream error" {
			t.Errorf("unexpected body %+v", resp)
		}
	})
}

func TestAlbumImageHandler(t *testing.T) {
	t.Run("returns the first image", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			SearchResult: matchResult(tu.Track("t1", "Yellow", "2000", []string{"Coldplay"}, "https://img/a", "https://img/b")),
		}
		rec := get(t, catalogRouter(t, catalog), "/get_album_image", trackQuery("Yellow", "Coldplay"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body models.AlbumImage
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if body.AlbumImage == nil || *body.AlbumImage != "https://img/a" {
			t.Errorf("unexpected image %v", body.AlbumImage)
		}
	})

	t.Run("album without images is null", func(t *testing.T) {
		catalog := &tu.MockCatalog{SearchResult: matchResult(tu.Track("t1", "Yellow", "2000", []string{"Coldplay"}))}
		rec := get(t, catalogRouter(t, catalog), "/get_album_image", trackQuery("Yellow", "Coldplay"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := rec.Body.String(); got != "{\"album_image\":null}\n" {
			t.Errorf("unexpected body %q", got)
		}
	})

	t.Run("missing artist", func(t *testing.T) {
		rec := get(t, catalogRouter(t, &tu.MockCatalog{}), "/get_album_image", trackQuery("Yellow", ""))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPlaylistTracksHandler(t *testing.T) {
	t.Run("lists tracks and skips nulls", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Playlists: map[string][]services.SpotifyPlaylistItem{
				"pl1": {
					{Track: tu.Track("t1", "One", "2001", []string{"A", "B"})},
					{Track: nil},
					{Track: tu.Track("t2", "Two", "2002", []string{"C"})},
				},
			},
		}
		rec := get(t, catalogRouter(t, catalog), "/get_playlist_tracks", playlistQuery("pl1"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var list models.PlaylistTrackList
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if len(list.PlaylistTracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(list.PlaylistTracks))
		}
		if list.PlaylistTracks[0].ArtistName != "A, B" || list.PlaylistTracks[1].TrackName != "Two" {
			t.Errorf("unexpected tracks %+v", list.PlaylistTracks)
		}
	})

	t.Run("empty playlist is an empty array", func(t *testing.T) {
		catalog := &tu.MockCatalog{Playlists: map[string][]services.SpotifyPlaylistItem{}}
		rec := get(t, catalogRouter(t, catalog), "/get_playlist_tracks", playlistQuery("empty"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := rec.Body.String(); got != "{\"playlist_tracks\":[]}\n" {
			t.Errorf("unexpected body %q", got)
		}
	})

	t.Run("accepts playlist links", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		get(t, catalogRouter(t, catalog), "/get_playlist_tracks", playlistQuery("https://open.spotify.com/playlist/37i9dQZF1DX?si=x"))

		if len(catalog.PlaylistRequests) != 1 || catalog.PlaylistRequests[0] != "37i9dQZF1DX" {
			t.Errorf("unexpected playlist requests %v", catalog.PlaylistRequests)
		}
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			status int
		}{
			{"rejected id", &services.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid base62 id"}, http.StatusBadRequest},
			{"missing playlist", fmt.Errorf("%w: pl1", shared.ErrPlaylistNotFound), http.StatusNotFound},
			{"upstream fault", &services.APIError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
			{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				catalog := &tu.MockCatalog{PlaylistErr: tt.err}
				rec := get(t, catalogRouter(t, catalog), "/get_playlist_tracks", playlistQuery("pl1"))

				if rec.Code != tt.status {
					t.Fatalf("expected %d, got %d", tt.status, rec.Code)
				}
				if resp := decodeError(t, rec.Body); resp.Detail != tt.err.Error() {
					t.Errorf("expected detail %q, got %q", tt.err.Error(), resp.Detail)
				}
			})
		}
	})

	t.Run("missing id", func(t *testing.T) {
		rec := get(t, catalogRouter(t, &tu.MockCatalog{}), "/get_playlist_tracks", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAnalyzePlaylistHandler(t *testing.T) {
	newCatalog := func() *tu.MockCatalog {
		return &tu.MockCatalog{
			Playlists: map[string][]services.SpotifyPlaylistItem{
				"pl1": {
					{Track: tu.Track("t1", "One", "1999-01-01", []string{"A"})},
					{Track: tu.Track("t2", "Two", "2005", []string{"B"})},
					{Track: tu.Track("t3", "Three", "2005-03", []string{"C"})},
				},
			},
			Features: map[string]*services.SpotifyAudioFeatures{
				"t1": {ID: "t1", Tempo: 100, Energy: 0.2, Danceability: 0.4, Valence: 0.6, Key: 0},
				"t2": {ID: "t2", Tempo: 110, Energy: 0.4, Danceability: 0.6, Valence: 0.8, Key: 1},
				"t3": {ID: "t3", Tempo: 120, Energy: 0.6, Danceability: 0.8, Valence: 1.0, Key: 0},
			},
		}
	}

	t.Run("reports statistics and charts", func(t *testing.T) {
		rec := get(t, catalogRouter(t, newCatalog()), "/analyze_playlist", playlistQuery("pl1"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var report models.PlaylistReport
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if report.BPM.Average != 110 || report.BPM.Median != 110 {
			t.Errorf("unexpected bpm %+v", report.BPM)
		}
		if report.Keys[0] != 2 || report.Keys[1] != 1 {
			t.Errorf("unexpected keys %v", report.Keys)
		}
		if report.ReleaseYears[2005] != 2 || report.ReleaseYears[1999] != 1 {
			t.Errorf("unexpected release years %v", report.ReleaseYears)
		}
		for _, name := range models.ChartNames {
			if report.Images[name] == "" {
				t.Errorf("missing chart %s", name)
			}
		}
	})

	t.Run("no features is 404", func(t *testing.T) {
		catalog := newCatalog()
		catalog.Features = nil
		rec := get(t, catalogRouter(t, catalog), "/analyze_playlist", playlistQuery("pl1"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("empty playlist is 404", func(t *testing.T) {
		rec := get(t, catalogRouter(t, newCatalog()), "/analyze_playlist", playlistQuery("other"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("render failure is 500", func(t *testing.T) {
		renderer := tu.NewStubRenderer()
		renderer.Err = fmt.Errorf("canvas broke")
		router := newTestRouter(t, nil, tasks.NewCatalogEngine(newCatalog(), renderer, nil))
		rec := get(t, router, "/analyze_playlist", playlistQuery("pl1"))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if resp := decodeError(t, rec.Body); resp.Error != "internal error" {
			t.Errorf("unexpected body %+v", resp)
		}
	})

	t.Run("features fault is 502", func(t *testing.T) {
		catalog := newCatalog()
		catalog.FeaturesErr = fmt.Errorf("%w: timeout", shared.ErrAPIRequest)
		rec := get(t, catalogRouter(t, catalog), "/analyze_playlist", playlistQuery("pl1"))

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}
