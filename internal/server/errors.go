package server

import (
	"errors"
	"net/http"

	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/goccy/go-json"
)

// failureKind classifies every error a handler can return. Each kind maps to one status code.
type failureKind int

const (
	kindInternal failureKind = iota
	kindValidation
	kindNotFound
	kindUpstream
	kindMethodNotAllowed
	kindRateLimited
)

func (k failureKind) status() int {
	switch k {
	case kindValidation:
		return http.StatusBadRequest
	case kindNotFound:
		return http.StatusNotFound
	case kindUpstream:
		return http.StatusBadGateway
	case kindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case kindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (k failureKind) String() string {
	switch k {
	case kindValidation:
		return "invalid request"
	case kindNotFound:
		return "not found"
	case kindUpstream:
		return "upstream error"
	case kindMethodNotAllowed:
		return "method not allowed"
	case kindRateLimited:
		return "rate limited"
	default:
		return "internal error"
	}
}

type failure struct {
	kind   failureKind
	detail string
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// classify maps engine and catalog errors to a failure. "No data" and upstream faults stay distinct.
func classify(err error) failure {
	kind := kindInternal
	switch {
	case errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidInput):
		kind = kindValidation
	case errors.Is(err, shared.ErrTrackNotFound),
		errors.Is(err, shared.ErrPlaylistNotFound),
		errors.Is(err, shared.ErrNoAudioFeatures):
		kind = kindNotFound
	case errors.Is(err, shared.ErrAPIRequest):
		kind = kindUpstream
	}
	return failure{kind: kind, detail: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, f failure) {
	writeJSON(w, f.kind.status(), errorResponse{Error: f.kind.String(), Detail: f.detail})
}
