package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pickletrack/pickle-deploy/internal/service/deploy"
)

// deployCmd ships artifacts and triggers build, switch and restart on the
// target host, in strict order over one blocking session.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Ship artifacts, build remotely and activate the new release",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return runWithSignals(func(ctx context.Context) error {
			return deploy.Run(ctx, &deploy.Options{ConfigPath: configPath})
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(deployCmd)
}
