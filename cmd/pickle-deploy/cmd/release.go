package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pickletrack/pickle-deploy/internal/service/release"
)

// releaseCmd runs build and switch on the host itself. It is the
// remote-only entry point: no SSH, just the host's own filesystem.
var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Build and activate a release on this host (remote-only)",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return runWithSignals(func(ctx context.Context) error {
			return release.Run(ctx, &release.Options{ConfigPath: configPath})
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(releaseCmd)
}
