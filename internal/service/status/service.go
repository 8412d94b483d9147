package status

import (
	"context"
	"fmt"

	"github.com/mitchellh/go-ps"

	"github.com/pickletrack/pickle-deploy/internal/config"
	"github.com/pickletrack/pickle-deploy/internal/logger"
	"github.com/pickletrack/pickle-deploy/internal/release"
	"github.com/pickletrack/pickle-deploy/internal/remote"
)

// Options are inputs accepted by the status entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// Run reports the deployed release on the host it runs on: both symlink
// targets, whether they resolve, and whether the service process is up.
// Like the release subcommand it is remote-only; partial states after a
// failed deploy are diagnosed here and repaired by hand.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "status")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	host := remote.NewLocal()
	layout := release.LayoutFromConfig(cfg)

	reportLink(ctx, host, "active binary", layout.BinaryLink())
	reportLink(ctx, host, "current data", layout.CurrentDataLink())

	running, err := serviceRunning(cfg.Binary)
	if err != nil {
		return fmt.Errorf("inspect processes: %w", err)
	}

	if running {
		logger.InfoKV(ctx, "Service process is running", "binary", cfg.Binary)
	} else {
		logger.WarnKV(ctx, "Service process is not running", "binary", cfg.Binary)
	}

	return nil
}

// reportLink logs a symlink's target and whether it resolves.
func reportLink(ctx context.Context, host remote.Host, label, link string) {
	target, err := host.ReadLink(ctx, link)
	if err != nil {
		logger.WarnKV(ctx, "Symlink is absent", "link", label, "path", link)
		return
	}

	if _, err = host.Stat(ctx, link); err != nil {
		logger.WarnKV(ctx, "Symlink target does not resolve",
			"link", label, "path", link, "target", target)

		return
	}

	logger.InfoKV(ctx, "Symlink resolves", "link", label, "path", link, "target", target)
}

// serviceRunning reports whether a process with the service's executable
// name exists.
func serviceRunning(binary string) (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, err
	}

	for _, process := range processes {
		if process.Executable() == binary {
			return true, nil
		}
	}

	return false, nil
}
