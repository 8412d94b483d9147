package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pickletrack/pickle-deploy/internal/config"
	"github.com/pickletrack/pickle-deploy/internal/logger"
	"github.com/pickletrack/pickle-deploy/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel is the minimum level for console output.
	logLevel string

	// rootCmd is the base command for the Pickletrack release pipeline.
	rootCmd = &cobra.Command{
		Use:   "pickle-deploy",
		Short: "Ship, build and activate Pickletrack releases on the target host",
		PersistentPreRun: func(*cobra.Command, []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
	}
)

// Execute runs the pickle-deploy CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runWithSignals executes the pipeline entry point with graceful shutdown
// on SIGTERM/SIGINT.
func runWithSignals(run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return run(ctx)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"minimum log level (debug, info, warn, error, fatal)")
}
