package main

import (
	"context"

	"github.com/desertthunder/trackscope/internal/formatter"
	"github.com/urfave/cli/v3"
)

// TrackInfo prints the first catalog match for --track and --artist.
func (r *Runner) TrackInfo(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	summary, err := engine.TrackInfo(ctx, cmd.String("track"), cmd.String("artist"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}
	return r.writePlain("%s", formatter.TrackText(summary))
}

// TrackImage prints the album cover URL of the first catalog match.
func (r *Runner) TrackImage(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	image, err := engine.AlbumImage(ctx, cmd.String("track"), cmd.String("artist"))
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.AlbumImageText(image))
}
