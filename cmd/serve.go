package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/trackscope/internal/server"
	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP API and blocks until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = int(cmd.Int("port"))
	}

	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(r.config, engine, shared.WithLogger(r.logger, "component", "http"))
	return server.Run(ctx, srv, r.logger)
}
