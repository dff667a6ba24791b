package main

import (
	"context"

	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example configuration to --path. Existing files are left alone.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	return r.writePlain("Wrote %s. Set client_id and client_secret, or export CLIENT_ID and CLIENT_SECRET.\n", path)
}
