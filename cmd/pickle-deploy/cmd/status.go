package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pickletrack/pickle-deploy/internal/service/status"
)

// statusCmd reports the deployed release and service process on this host.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report symlink targets and service process state on this host (remote-only)",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return runWithSignals(func(ctx context.Context) error {
			return status.Run(ctx, &status.Options{ConfigPath: configPath})
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(statusCmd)
}
