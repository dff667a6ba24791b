package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackscope/internal/charts"
	"github.com/desertthunder/trackscope/internal/services"
	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/desertthunder/trackscope/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog // built from Config on first use when nil
	HTTPClient *http.Client     // base client for the catalog, optional
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, trackCommand, playlistCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure resolves the configuration file and environment before any command runs.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := shared.ResolveConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	r.config = config

	level := config.Log.Level
	if cmd.Bool("verbose") {
		level = "debug"
	}
	if err := shared.SetLogLevel(r.logger, level); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// catalogEngine validates credentials and lazily builds the catalog client. There is no degraded
// mode: every catalog command fails when credentials are missing.
func (r *Runner) catalogEngine() (tasks.Engine, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}
	if r.engine != nil {
		return r.engine, nil
	}

	if r.catalog == nil {
		svc, err := services.NewSpotifyService(services.SpotifyOptions{
			ClientID:          r.config.Credentials.Spotify.ClientID,
			ClientSecret:      r.config.Credentials.Spotify.ClientSecret,
			APIURL:            r.config.Catalog.APIURL,
			TokenURL:          r.config.Catalog.TokenURL,
			Market:            r.config.Catalog.Market,
			RequestsPerSecond: r.config.Catalog.RequestsPerSecond,
			Timeout:           r.config.Catalog.Timeout.Duration,
			HTTPClient:        r.httpClient,
			Logger:            shared.WithLogger(r.logger, "service", "spotify"),
		})
		if err != nil {
			return nil, err
		}
		r.catalog = svc
	}

	r.engine = tasks.NewCatalogEngine(r.catalog, charts.NewPNGRenderer(), r.logger)
	return r.engine, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
