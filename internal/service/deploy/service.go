package deploy

import (
	"context"
	"fmt"
	"path"

	"github.com/pickletrack/pickle-deploy/internal/config"
	"github.com/pickletrack/pickle-deploy/internal/logger"
	"github.com/pickletrack/pickle-deploy/internal/pipeline"
	"github.com/pickletrack/pickle-deploy/internal/release"
	"github.com/pickletrack/pickle-deploy/internal/remote"
	releasesvc "github.com/pickletrack/pickle-deploy/internal/service/release"
)

// Options are inputs accepted by the deploy entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// runner holds the state for one deploy execution.
type runner struct {
	cfg       *config.Config
	host      remote.Host
	layout    release.Layout
	artifacts *release.ArtifactSet
}

// Run executes the full pipeline against the configured host: ship the
// artifact set, then build, switch and restart over one blocking session.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "deploy")

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

	if err = RunWithHost(ctx, cfg, host); err != nil {
		logger.ErrorKV(ctx, "Deploy failed", "error", err)
		return err
	}

	logger.Info(ctx, "Deploy completed")

	return nil
}

// RunWithHost runs the pipeline against an already-connected host.
func RunWithHost(ctx context.Context, cfg *config.Config, host remote.Host) error {
	r := &runner{
		cfg:    cfg,
		host:   host,
		layout: release.LayoutFromConfig(cfg),
	}

	artifacts, err := release.CollectArtifacts(cfg.ProjectDir, r.layout)
	if err != nil {
		return &pipeline.Error{Kind: pipeline.KindTransport, Step: "collect artifacts", Err: err}
	}

	r.artifacts = artifacts

	steps := []pipeline.Step{
		{
			Name: "ensure remote directories",
			Kind: pipeline.KindTransport,
			Run:  r.ensureDirectories,
		},
		{
			Name: "ship build manifest",
			Kind: pipeline.KindTransport,
			Run: func(ctx context.Context) error {
				return r.ship(ctx, r.artifacts.BuildManifest)
			},
		},
		{
			Name: "ship dependency lockfile",
			Kind: pipeline.KindTransport,
			Run: func(ctx context.Context) error {
				return r.ship(ctx, r.artifacts.Lockfile)
			},
		},
		{
			Name: "ship source tree",
			Kind: pipeline.KindTransport,
			Run: func(ctx context.Context) error {
				return r.shipAll(ctx, r.artifacts.Sources)
			},
		},
		{
			Name: "ship static assets",
			Kind: pipeline.KindTransport,
			Run: func(ctx context.Context) error {
				return r.shipAll(ctx, r.artifacts.Static)
			},
		},
		{
			Name: "refresh executable directory",
			Kind: pipeline.KindTransport,
			Run:  r.refreshExecutableDir,
		},
		{
			Name: "write release manifest",
			Kind: pipeline.KindTransport,
			Run:  r.writeManifest,
		},
	}

	steps = append(steps, releasesvc.Steps(cfg, host)...)
	steps = append(steps, pipeline.Step{
		Name: "restart service",
		Kind: pipeline.KindRestart,
		Run:  r.restart,
	})

	return pipeline.Run(ctx, steps...)
}

// ensureDirectories creates the remote layout. Creation is idempotent, so
// repeated deploys are safe; the rest of the host state is not touched.
func (r *runner) ensureDirectories(ctx context.Context) error {
	for _, dir := range r.layout.Dirs() {
		if err := r.host.MkdirAll(ctx, dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	return nil
}

// ship transfers one artifact, creating its remote parent directory.
func (r *runner) ship(ctx context.Context, artifact release.Artifact) error {
	if err := r.host.MkdirAll(ctx, path.Dir(artifact.Remote)); err != nil {
		return fmt.Errorf("create %s: %w", path.Dir(artifact.Remote), err)
	}

	logger.DebugKV(ctx, "Shipping file", "local", artifact.Local, "remote", artifact.Remote)

	return r.host.Upload(ctx, artifact.Local, artifact.Remote, artifact.Mode)
}

// shipAll transfers artifacts in order, stopping at the first failure.
func (r *runner) shipAll(ctx context.Context, artifacts []release.Artifact) error {
	for _, artifact := range artifacts {
		if err := r.ship(ctx, artifact); err != nil {
			return err
		}
	}

	return nil
}

// refreshExecutableDir clears stale entries from the executable directory
// and copies the new operator scripts into it. The active-binary symlink
// is left in place: it still resolves to the previous build output and is
// repointed atomically by the switch step, never removed.
func (r *runner) refreshExecutableDir(ctx context.Context) error {
	entries, err := r.host.ReadDir(ctx, r.layout.BinDir)
	if err != nil {
		return fmt.Errorf("list %s: %w", r.layout.BinDir, err)
	}

	for _, entry := range entries {
		if entry.Name() == r.layout.Binary {
			continue
		}

		stale := path.Join(r.layout.BinDir, entry.Name())

		logger.DebugKV(ctx, "Removing stale entry", "path", stale)

		if entry.IsDir() {
			err = r.host.RemoveAll(ctx, stale)
		} else {
			err = r.host.Remove(ctx, stale)
		}

		if err != nil {
			return fmt.Errorf("remove %s: %w", stale, err)
		}
	}

	return r.shipAll(ctx, r.artifacts.Scripts)
}

// writeManifest records the shipped release on the host. It is the last
// ship step, so a present manifest implies a complete artifact set.
func (r *runner) writeManifest(ctx context.Context) error {
	manifest := release.NewManifest()

	for _, artifact := range r.artifacts.All() {
		if err := manifest.Add(artifact.Name, artifact.Local); err != nil {
			return fmt.Errorf("checksum %s: %w", artifact.Local, err)
		}
	}

	data, err := manifest.Encode()
	if err != nil {
		return err
	}

	return r.host.WriteFile(ctx, r.layout.ManifestPath(), data, 0o644)
}

// restart issues the supervisor restart instruction. The supervisor's own
// retry and health-check behavior is a black box; a failure here leaves
// the filesystem-level release state valid, only the running process may
// be stale.
func (r *runner) restart(ctx context.Context) error {
	logger.InfoKV(ctx, "Restarting service", "command", r.cfg.RestartCommand)

	output, err := r.host.Run(ctx, r.cfg.RestartCommand)
	if err != nil {
		return fmt.Errorf("%w\n%s", err, output)
	}

	return nil
}
