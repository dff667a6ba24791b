package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trackscope/internal/formatter"
	"github.com/desertthunder/trackscope/internal/services"
	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/desertthunder/trackscope/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistTracks lists every track of a playlist as a table, JSON or CSV.
func (r *Runner) PlaylistTracks(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") && cmd.Bool("csv") {
		return fmt.Errorf("%w: cannot specify both --json and --csv", shared.ErrInvalidInput)
	}

	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	playlistID := services.ParsePlaylistID(cmd.String("id"))
	r.logger.Debug("listing playlist", "playlist_id", playlistID)

	list, err := engine.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(list, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.ExportToCSV(list)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		return r.writePlain("%s", formatter.PlaylistText(list))
	}
}

// PlaylistAnalyze runs the playlist analysis, printing progress while it works.
//
// With --charts-dir the rendered charts are written as PNG files.
func (r *Runner) PlaylistAnalyze(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	useJSON := cmd.Bool("json")
	playlistID := services.ParsePlaylistID(cmd.String("id"))

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if !useJSON {
				r.writePlain("%s\n", formatter.ProgressText(update))
			}
		}
	}()

	report, err := engine.AnalyzePlaylist(ctx, progressCh, playlistID)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if dir := cmd.String("charts-dir"); dir != "" {
		files, err := formatter.WriteCharts(report, dir)
		if err != nil {
			return err
		}
		r.logger.Info("wrote charts", "dir", dir, "count", len(files))
	}

	if useJSON {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}
	return r.writePlain("\n%s", formatter.ReportText(report))
}
