package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pickletrack/pickle-deploy/internal/config"
	"github.com/pickletrack/pickle-deploy/internal/logger"
	"github.com/pickletrack/pickle-deploy/internal/pipeline"
	"github.com/pickletrack/pickle-deploy/internal/release"
	"github.com/pickletrack/pickle-deploy/internal/remote"
)

// Options are inputs accepted by the release entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// runner holds the state for one build-and-switch execution.
type runner struct {
	cfg    *config.Config
	host   remote.Host
	layout release.Layout
}

var errSnapshotMissing = errors.New("pinned snapshot does not exist in the data directory")

// Run executes build and switch on the host itself. This is the
// remote-only command: it talks to the local filesystem, not SSH.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "release")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	host := remote.NewLocal()

	if err = pipeline.Run(ctx, Steps(cfg, host)...); err != nil {
		logger.ErrorKV(ctx, "Release failed", "error", err)
		return err
	}

	logger.Info(ctx, "Release completed")

	return nil
}

// Steps returns the build and switch stages against the given host.
// The deploy command composes them after shipping; the release command
// runs them directly on the host.
func Steps(cfg *config.Config, host remote.Host) []pipeline.Step {
	r := &runner{
		cfg:    cfg,
		host:   host,
		layout: release.LayoutFromConfig(cfg),
	}

	return []pipeline.Step{
		{
			Name: "build release binary",
			Kind: pipeline.KindBuild,
			Run:  r.build,
		},
		{
			Name: "switch active release",
			Kind: pipeline.KindSwitch,
			Run:  r.switchRelease,
		},
	}
}

// build compiles the release binary from the shipped sources, pinned to
// the shipped lockfile. A compile error aborts the pipeline before any
// switch step runs, leaving the previous release untouched.
func (r *runner) build(ctx context.Context) error {
	command := r.cfg.BuildCommand
	if command == "" {
		command = fmt.Sprintf(
			"cd %s && go build -mod=readonly -trimpath -ldflags '-s -w' -o %s %s",
			shellQuote(r.layout.SourceDir),
			shellQuote("bin/"+r.layout.Binary),
			shellQuote(r.cfg.BuildTarget),
		)
	}

	logger.InfoKV(ctx, "Building release binary", "command", command)

	output, err := r.host.Run(ctx, command)
	if err != nil {
		if trimmed := strings.TrimSpace(output); trimmed != "" {
			return fmt.Errorf("%w\n%s", err, trimmed)
		}

		return err
	}

	// The link target must exist and be complete before the switch step
	// may point at it.
	if _, err = r.host.Stat(ctx, r.layout.BuildOutput()); err != nil {
		return fmt.Errorf("build produced no output at %s: %w", r.layout.BuildOutput(), err)
	}

	return nil
}

// switchRelease repoints the current-data and active-binary symlinks.
// Both links are replaced with an atomic rename, so a reader never
// observes a missing target, and re-running with unchanged artifacts and
// snapshot yields identical link targets.
func (r *runner) switchRelease(ctx context.Context) error {
	snapshot, err := r.chooseSnapshot(ctx)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Activating data snapshot", "snapshot", snapshot)

	// The snapshot link target is relative: the link and the dated files
	// share the data directory.
	if err = r.activate(ctx, snapshot, r.layout.CurrentDataLink()); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Activating binary", "target", r.layout.BuildOutput())

	return r.activate(ctx, r.layout.BuildOutput(), r.layout.BinaryLink())
}

// chooseSnapshot returns the pinned snapshot after verifying it exists,
// or selects the newest dated snapshot in the data directory.
func (r *runner) chooseSnapshot(ctx context.Context) (string, error) {
	if pinned := r.cfg.Snapshot; pinned != "" {
		if _, err := r.host.Stat(ctx, r.layout.DataDir()+"/"+pinned); err != nil {
			return "", fmt.Errorf("%w: %s: %v", errSnapshotMissing, pinned, err)
		}

		return pinned, nil
	}

	entries, err := r.host.ReadDir(ctx, r.layout.DataDir())
	if err != nil {
		return "", fmt.Errorf("list data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return release.LatestSnapshot(names)
}

// activate points link at target through a staging link and one rename.
func (r *runner) activate(ctx context.Context, target, link string) error {
	staging := link + ".new"

	// A staging link left behind by an interrupted switch is stale.
	if _, err := r.host.ReadLink(ctx, staging); err == nil {
		if err = r.host.Remove(ctx, staging); err != nil {
			return fmt.Errorf("remove stale staging link: %w", err)
		}
	}

	if err := r.host.Symlink(ctx, target, staging); err != nil {
		return fmt.Errorf("create staging link: %w", err)
	}

	if err := r.host.Rename(ctx, staging, link); err != nil {
		return fmt.Errorf("rename staging link over %s: %w", link, err)
	}

	return nil
}

// shellQuote wraps a path in single quotes for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
