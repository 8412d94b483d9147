package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pickletrack/pickle-deploy/internal/service/provision"
)

// provisionCmd installs the toolchain and build packages on a fresh host.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Install the compiler toolchain and build packages on a fresh host",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return runWithSignals(func(ctx context.Context) error {
			return provision.Run(ctx, &provision.Options{ConfigPath: configPath})
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(provisionCmd)
}
