package main

import (
	"context"
	"os"

	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

// newApp builds the root command. Configuration is resolved in Before so every subcommand sees
// the file, environment and --verbose settings.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "trackscope",
		Usage:   "Spotify track lookups and playlist audio analysis",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
