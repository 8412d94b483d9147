package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pickletrack/pickle-deploy/internal/config"
	releasesvc "github.com/pickletrack/pickle-deploy/internal/service/release"
)

// TestRelease_FromConfigFile drives the remote-only release entry point
// through a settings file, the way it runs on the host itself.
func TestRelease_FromConfigFile(t *testing.T) {
	t.Parallel()

	cfg := hostConfig(t)
	addSnapshot(t, cfg, "20170901.json")

	// The release subcommand reads settings from disk on the host.
	for _, dir := range []string{cfg.SourceDir, cfg.BinDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	cfgPath := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(cfgPath, cfg))

	options := &releasesvc.Options{ConfigPath: cfgPath}
	require.NoError(t, releasesvc.Run(context.Background(), options))

	target, err := os.Readlink(filepath.Join(cfg.StaticDir, "data", "current.json"))
	require.NoError(t, err)
	require.Equal(t, "20170901.json", target)

	// Re-running with unchanged artifacts and snapshot is idempotent.
	require.NoError(t, releasesvc.Run(context.Background(), options))

	again, err := os.Readlink(filepath.Join(cfg.StaticDir, "data", "current.json"))
	require.NoError(t, err)
	require.Equal(t, target, again)
}
