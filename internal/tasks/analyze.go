package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/trackscope/internal/charts"
	"github.com/desertthunder/trackscope/internal/models"
	"github.com/desertthunder/trackscope/internal/services"
	"github.com/desertthunder/trackscope/internal/shared"
)

// featureSeries holds one sequence per descriptor, in catalog order.
type featureSeries struct {
	tempo        []float64
	energy       []float64
	danceability []float64
	valence      []float64
	keys         []int
}

func newFeatureSeries(samples []models.AudioFeatureSample) featureSeries {
	s := featureSeries{
		tempo:        make([]float64, 0, len(samples)),
		energy:       make([]float64, 0, len(samples)),
		danceability: make([]float64, 0, len(samples)),
		valence:      make([]float64, 0, len(samples)),
		keys:         make([]int, 0, len(samples)),
	}
	for _, f := range samples {
		s.tempo = append(s.tempo, f.Tempo)
		s.energy = append(s.energy, f.Energy)
		s.danceability = append(s.danceability, f.Danceability)
		s.valence = append(s.valence, f.Valence)
		s.keys = append(s.keys, f.Key)
	}
	return s
}

// AnalyzePlaylist builds a [models.PlaylistReport].
//
// Release years are read from every non-null playlist track, including tracks the catalog has no
// audio features for, so the year table can count more tracks than the feature statistics.
func (e *CatalogEngine) AnalyzePlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) (*models.PlaylistReport, error) {
	if strings.TrimSpace(playlistID) == "" {
		return nil, fmt.Errorf("%w: playlist_id", shared.ErrMissingArgument)
	}

	e.sendProgress(progress, fetchingTracksUpdate(playlistID))
	items, err := e.catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	tracks := make([]services.SpotifyTrack, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Track == nil {
			continue
		}
		tracks = append(tracks, *item.Track)
		if item.Track.ID != "" {
			ids = append(ids, item.Track.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: playlist %s has no tracks", shared.ErrTrackNotFound, playlistID)
	}

	e.sendProgress(progress, fetchingFeaturesUpdate(len(ids)))
	features, err := e.catalog.AudioFeatures(ctx, ids)
	if err != nil {
		return nil, err
	}

	samples := make([]models.AudioFeatureSample, 0, len(features))
	for _, f := range features {
		if f == nil {
			continue
		}
		samples = append(samples, services.ToAudioFeatureSample(*f))
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: playlist %s", shared.ErrNoAudioFeatures, playlistID)
	}

	e.sendProgress(progress, aggregatingUpdate(len(samples), len(tracks)))
	series := newFeatureSeries(samples)
	years := releaseYears(tracks)

	report := &models.PlaylistReport{
		BPM: models.TempoStats{
			Average: Mean(series.tempo),
			Median:  Median(series.tempo),
		},
		Energy:        models.AverageStat{Average: Mean(series.energy)},
		Danceability:  models.AverageStat{Average: Mean(series.danceability)},
		Valence:       models.AverageStat{Average: Mean(series.valence)},
		Keys:          CountInts(series.keys),
		ReleaseYears:  CountInts(years),
		TrackCount:    len(tracks),
		AnalyzedCount: len(samples),
	}

	images, err := e.renderCharts(progress, series, report.Keys, years)
	if err != nil {
		return nil, err
	}
	report.Images = images

	e.logger.Debug("analyzed playlist", "playlist_id", playlistID, "tracks", len(tracks), "analyzed", len(samples))
	return report, nil
}

// releaseYears takes the year prefix of each album release date, skipping empty or unparseable dates.
func releaseYears(tracks []services.SpotifyTrack) []int {
	years := make([]int, 0, len(tracks))
	for _, t := range tracks {
		if t.Album.ReleaseDate == "" {
			continue
		}
		year, ok := ReleaseYear(t.Album.ReleaseDate)
		if !ok {
			continue
		}
		years = append(years, year)
	}
	return years
}

// renderCharts draws the six report charts one after another. The release year histogram is
// drawn as empty axes when no track has a usable release date.
func (e *CatalogEngine) renderCharts(progress chan<- ProgressUpdate, s featureSeries, keys map[int]int, years []int) (map[string]string, error) {
	type job struct {
		name   string
		render func() (string, error)
	}

	jobs := []job{
		{models.ChartBPM, func() (string, error) { return e.renderer.Histogram("BPM Distribution", "BPM", s.tempo) }},
		{models.ChartEnergy, func() (string, error) { return e.renderer.Histogram("Energy Distribution", "Energy", s.energy) }},
		{models.ChartDanceability, func() (string, error) {
			return e.renderer.Histogram("Danceability Distribution", "Danceability", s.danceability)
		}},
		{models.ChartValence, func() (string, error) { return e.renderer.Histogram("Valence Distribution", "Valence", s.valence) }},
		{models.ChartKeys, func() (string, error) {
			return e.renderer.Pie("Key Distribution", charts.SortedSlices(keys, KeyName))
		}},
		{models.ChartReleaseYears, func() (string, error) {
			if len(years) == 0 {
				e.logger.Warn("no release dates, drawing empty chart", "chart", models.ChartReleaseYears)
				return e.renderer.EmptyHistogram("Release Year Distribution", "Year")
			}
			return e.renderer.Histogram("Release Year Distribution", "Year", toFloats(years))
		}},
	}

	images := make(map[string]string, len(jobs))
	for i, j := range jobs {
		e.sendProgress(progress, renderingUpdate(i+1, len(jobs), j.name))

		uri, err := j.render()
		if err != nil {
			return nil, fmt.Errorf("failed to render %s chart: %w", j.name, err)
		}
		images[j.name] = uri
	}
	return images, nil
}
