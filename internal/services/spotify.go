// Spotify Web API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	playlistPageSize   = 100
	audioFeatureBatch  = 100
	defaultHTTPTimeout = 30 * time.Second
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a simplified Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	PreviewURL   *string         `json:"preview_url"`
	ExternalURLs externalURLs    `json:"external_urls"`
	IsLocal      bool            `json:"is_local"`
	URI          string          `json:"uri"`
}

// SpotifyTrackPage is a page of tracks inside a search response.
type SpotifyTrackPage struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
	Limit int            `json:"limit"`
}

// SearchResult represents the body of GET /search.
type SearchResult struct {
	Tracks SpotifyTrackPage `json:"tracks"`
}

// SpotifyPlaylistItem represents a track within a playlist context. Track is nil for removed
// or unavailable entries.
type SpotifyPlaylistItem struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

type playlistItemPage struct {
	Items  []SpotifyPlaylistItem `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
	Next   *string               `json:"next"`
}

// SpotifyAudioFeatures represents the acoustic descriptors of one track.
type SpotifyAudioFeatures struct {
	ID               string  `json:"id"`
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Valence          float64 `json:"valence"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	Loudness         float64 `json:"loudness"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}

type audioFeaturesResponse struct {
	AudioFeatures []*SpotifyAudioFeatures `json:"audio_features"`
}

type errorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError is a non-2xx response from the Spotify API.
//
// It unwraps to [shared.ErrInvalidInput] for 400 responses and to [shared.ErrAPIRequest] otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("spotify API error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusBadRequest {
		return shared.ErrInvalidInput
	}
	return shared.ErrAPIRequest
}

// SpotifyOptions configures a [SpotifyService].
type SpotifyOptions struct {
	ClientID          string
	ClientSecret      string
	APIURL            string        // defaults to https://api.spotify.com/v1
	TokenURL          string        // defaults to https://accounts.spotify.com/api/token
	Market            string        // optional ISO 3166-1 alpha-2 country code
	RequestsPerSecond float64       // 0 disables pacing
	Timeout           time.Duration // per upstream request, defaults to 30s
	HTTPClient        *http.Client  // base client for both token and API calls
	Logger            *log.Logger
}

// SpotifyService implements [Catalog] against the Spotify Web API using the client credentials flow.
//
// The token is fetched lazily and refreshed by [oauth2]; the service holds no per-request state.
type SpotifyService struct {
	baseURL    string
	market     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSpotifyService creates a new Spotify catalog client with the given credentials.
func NewSpotifyService(opts SpotifyOptions) (*SpotifyService, error) {
	if opts.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if opts.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}
	if opts.APIURL == "" {
		opts.APIURL = spotifyBaseURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultHTTPTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	config := &clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)
	client := config.Client(ctx)
	client.Timeout = opts.Timeout

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &SpotifyService{
		baseURL:    strings.TrimRight(opts.APIURL, "/"),
		market:     opts.Market,
		httpClient: client,
		limiter:    limiter,
		logger:     opts.Logger,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the Spotify API and decodes the body into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
		}
	}

	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	s.logger.Debug("spotify request", "endpoint", endpoint, "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body errorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Message = body.Error.Message
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// Search runs GET /search.
func (s *SpotifyService) Search(ctx context.Context, query, searchType string, limit int) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrMissingArgument)
	}
	if searchType == "" {
		searchType = SearchTypeTrack
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", searchType)
	params.Set("limit", strconv.Itoa(limit))
	if s.market != "" {
		params.Set("market", s.market)
	}

	var result SearchResult
	if err := s.doRequest(ctx, "/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PlaylistTracks reads every page of GET /playlists/{id}/tracks.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]SpotifyPlaylistItem, error) {
	if strings.TrimSpace(playlistID) == "" {
		return nil, fmt.Errorf("%w: playlist_id", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	items := []SpotifyPlaylistItem{}
	offset := 0

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(playlistPageSize))
		params.Set("offset", strconv.Itoa(offset))
		if s.market != "" {
			params.Set("market", s.market)
		}

		var page playlistItemPage
		if err := s.doRequest(ctx, endpoint, params, &page); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
			}
			return nil, err
		}

		items = append(items, page.Items...)
		if page.Next == nil || len(page.Items) == 0 {
			break
		}
		offset += len(page.Items)
	}

	return items, nil
}

// AudioFeatures calls GET /audio-features in batches of 100 ids and stitches the results back together.
func (s *SpotifyService) AudioFeatures(ctx context.Context, trackIDs []string) ([]*SpotifyAudioFeatures, error) {
	if len(trackIDs) == 0 {
		return nil, fmt.Errorf("%w: no track IDs provided", shared.ErrMissingArgument)
	}

	features := make([]*SpotifyAudioFeatures, 0, len(trackIDs))
	for start := 0; start < len(trackIDs); start += audioFeatureBatch {
		end := min(start+audioFeatureBatch, len(trackIDs))
		batch := trackIDs[start:end]

		params := url.Values{}
		params.Set("ids", strings.Join(batch, ","))

		var response audioFeaturesResponse
		if err := s.doRequest(ctx, "/audio-features", params, &response); err != nil {
			return nil, err
		}
		if len(response.AudioFeatures) != len(batch) {
			return nil, fmt.Errorf("%w: expected %d audio features, got %d", shared.ErrAPIRequest, len(batch), len(response.AudioFeatures))
		}

		features = append(features, response.AudioFeatures...)
	}

	return features, nil
}
