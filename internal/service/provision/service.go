package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickletrack/pickle-deploy/internal/config"
	"github.com/pickletrack/pickle-deploy/internal/logger"
	"github.com/pickletrack/pickle-deploy/internal/pipeline"
	"github.com/pickletrack/pickle-deploy/internal/remote"
)

// Options are inputs accepted by the provision entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// runner holds the state for one provisioning execution.
type runner struct {
	cfg  *config.Config
	host remote.Host
}

// Run provisions a host believed to be freshly created: OS build packages
// first, then the compiler toolchain. One-shot and fail-fast: any install
// failure aborts immediately and leaves the host in an undefined
// intermediate state that the operator resolves by hand. Re-running on an
// already provisioned host is not guaranteed idempotent; whether the
// installers error or no-op depends on the package manager.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "provision")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	host, err := remote.DialSSH(ctx, cfg)
	if err != nil {
		return &pipeline.Error{Kind: pipeline.KindTransport, Step: "connect to host", Err: err}
	}

	defer func() {
		_ = host.Close()
	}()

	if err = pipeline.Run(ctx, Steps(cfg, host)...); err != nil {
		logger.ErrorKV(ctx, "Provisioning failed", "error", err)
		return err
	}

	logger.Info(ctx, "Host provisioned")

	return nil
}

// Steps returns the provisioning stages against the given host.
func Steps(cfg *config.Config, host remote.Host) []pipeline.Step {
	r := &runner{cfg: cfg, host: host}

	return []pipeline.Step{
		{
			Name: "install build packages",
			Kind: pipeline.KindProvision,
			Run:  r.installBuildPackages,
		},
		{
			Name: "install go toolchain",
			Kind: pipeline.KindProvision,
			Run:  r.installToolchain,
		},
	}
}

// installBuildPackages installs the OS-level build dependencies.
func (r *runner) installBuildPackages(ctx context.Context) error {
	commands := []string{
		"sudo apt-get update",
		"sudo DEBIAN_FRONTEND=noninteractive apt-get install -y build-essential git curl",
	}

	return r.runAll(ctx, commands)
}

// installToolchain installs the Go toolchain used by the remote builder.
func (r *runner) installToolchain(ctx context.Context) error {
	tarball := fmt.Sprintf("go%s.linux-amd64.tar.gz", r.cfg.ToolchainVersion)

	commands := []string{
		fmt.Sprintf("curl -fsSL -o /tmp/%s https://go.dev/dl/%s", tarball, tarball),
		"sudo rm -rf /usr/local/go",
		fmt.Sprintf("sudo tar -C /usr/local -xzf /tmp/%s", tarball),
		"sudo ln -sf /usr/local/go/bin/go /usr/local/bin/go",
		fmt.Sprintf("rm -f /tmp/%s", tarball),
	}

	return r.runAll(ctx, commands)
}

// runAll executes commands in order, stopping at the first failure.
func (r *runner) runAll(ctx context.Context, commands []string) error {
	for _, command := range commands {
		logger.InfoKV(ctx, "Running install command", "command", command)

		output, err := r.host.Run(ctx, command)
		if err != nil {
			if trimmed := strings.TrimSpace(output); trimmed != "" {
				return fmt.Errorf("%w\n%s", err, trimmed)
			}

			return err
		}
	}

	return nil
}
