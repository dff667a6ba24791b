package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackscope/internal/tasks"
)

const welcomeMessage = "Welcome to trackscope"

// CatalogHandler serves the track and playlist endpoints.
type CatalogHandler struct {
	engine tasks.Engine
	logger *log.Logger
}

// NewCatalogHandler creates a handler backed by engine.
func NewCatalogHandler(engine tasks.Engine, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{engine: engine, logger: logger}
}

// Routes implements [Handler].
func (h *CatalogHandler) Routes() []string {
	return []string{
		"/{$}",
		"/track-info",
		"/get_album_image",
		"/get_playlist_tracks",
		"/analyze_playlist",
	}
}

// ServeHTTP dispatches on the request path. Only GET and HEAD are accepted.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeFailure(w, failure{kind: kindMethodNotAllowed, detail: r.Method + " is not allowed"})
		return
	}

	switch r.URL.Path {
	case "/":
		writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	case "/track-info":
		h.trackInfo(w, r)
	case "/get_album_image":
		h.albumImage(w, r)
	case "/get_playlist_tracks":
		h.playlistTracks(w, r)
	case "/analyze_playlist":
		h.analyzePlaylist(w, r)
	default:
		writeFailure(w, failure{kind: kindNotFound, detail: "no route for " + r.URL.Path})
	}
}

func (h *CatalogHandler) trackInfo(w http.ResponseWriter, r *http.Request) {
	params, err := parseTrackParams(r.URL.Query())
	if err != nil {
		writeFailure(w, failure{kind: kindValidation, detail: err.Error()})
		return
	}

	summary, err := h.engine.TrackInfo(r.Context(), params.TrackName, params.ArtistName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *CatalogHandler) albumImage(w http.ResponseWriter, r *http.Request) {
	params, err := parseTrackParams(r.URL.Query())
	if err != nil {
		writeFailure(w, failure{kind: kindValidation, detail: err.Error()})
		return
	}

	image, err := h.engine.AlbumImage(r.Context(), params.TrackName, params.ArtistName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, image)
}

func (h *CatalogHandler) playlistTracks(w http.ResponseWriter, r *http.Request) {
	params, err := parsePlaylistParams(r.URL.Query())
	if err != nil {
		writeFailure(w, failure{kind: kindValidation, detail: err.Error()})
		return
	}

	list, err := h.engine.PlaylistTracks(r.Context(), params.PlaylistID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CatalogHandler) analyzePlaylist(w http.ResponseWriter, r *http.Request) {
	params, err := parsePlaylistParams(r.URL.Query())
	if err != nil {
		writeFailure(w, failure{kind: kindValidation, detail: err.Error()})
		return
	}

	report, err := h.engine.AnalyzePlaylist(r.Context(), nil, params.PlaylistID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	f := classify(err)
	if f.kind == kindInternal || f.kind == kindUpstream {
		h.logger.Error("request failed", "path", r.URL.Path, "kind", f.kind, "err", err)
	}
	writeFailure(w, f)
}

// Health reports liveness without touching the catalog.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
