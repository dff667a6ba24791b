package server

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/desertthunder/trackscope/internal/services"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// trackParams are the query parameters of the track lookups.
type trackParams struct {
	TrackName  string `query:"track_name" validate:"required,max=200"`
	ArtistName string `query:"artist_name" validate:"required,max=200"`
}

// playlistParams are the query parameters of the playlist endpoints.
type playlistParams struct {
	PlaylistID string `query:"playlist_id" validate:"required,alphanum,max=64"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("query")
		})
	})
	return validate
}

func parseTrackParams(q url.Values) (trackParams, error) {
	p := trackParams{
		TrackName:  strings.TrimSpace(q.Get("track_name")),
		ArtistName: strings.TrimSpace(q.Get("artist_name")),
	}
	return p, validateParams(p)
}

// parsePlaylistParams accepts a bare id, a spotify:playlist: URI or an open.spotify.com link.
func parsePlaylistParams(q url.Values) (playlistParams, error) {
	p := playlistParams{PlaylistID: services.ParsePlaylistID(q.Get("playlist_id"))}
	return p, validateParams(p)
}

func validateParams(p any) error {
	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, translate(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s must be a catalog identifier", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
