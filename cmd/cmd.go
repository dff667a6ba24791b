// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func trackFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "track",
			Aliases:  []string{"t"},
			Usage:    "Track name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "artist",
			Aliases:  []string{"a"},
			Usage:    "Artist name",
			Required: true,
		},
	}
	return append(flags, extra...)
}

func playlistFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "Playlist ID, spotify:playlist: URI or open.spotify.com link",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
	return append(flags, extra...)
}

// serveCommand starts the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the track and playlist API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides [server] host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides [server] port)",
			},
		},
		Action: r.Serve,
	}
}

// trackCommand handles single track lookups
func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Look up a track by name and artist",
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Show the first catalog match",
				Flags: trackFlags(&cli.BoolFlag{
					Name:  "json",
					Usage: "Output raw JSON",
				}),
				Action: r.TrackInfo,
			},
			{
				Name:   "image",
				Usage:  "Print the album cover URL of the first catalog match",
				Flags:  trackFlags(),
				Action: r.TrackImage,
			},
		},
	}
}

// playlistCommand handles playlist listing and analysis
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List every track of a playlist",
				Flags: playlistFlags(&cli.BoolFlag{
					Name:  "csv",
					Usage: "Output CSV",
				}),
				Action: r.PlaylistTracks,
			},
			{
				Name:  "analyze",
				Usage: "Compute audio feature statistics and render charts",
				Flags: playlistFlags(&cli.StringFlag{
					Name:  "charts-dir",
					Usage: "Directory to write the chart PNGs to",
				}),
				Action: r.PlaylistAnalyze,
			},
		},
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
