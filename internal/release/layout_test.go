package release

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pickletrack/pickle-deploy/internal/config"
)

// TestLayoutPaths verifies the typed path handles derived from settings.
func TestLayoutPaths(t *testing.T) {
	t.Parallel()

	layout := LayoutFromConfig(&config.Config{
		SourceDir: "/home/deploy/pickletrack",
		StaticDir: "/home/deploy/pickletrack/static",
		BinDir:    "/home/deploy/bin",
		Binary:    "pickletrack-server",
	})

	require.Equal(t, "/home/deploy/pickletrack/static/data", layout.DataDir())
	require.Equal(t, "/home/deploy/pickletrack/static/data/current.json", layout.CurrentDataLink())
	require.Equal(t, "/home/deploy/pickletrack/bin/pickletrack-server", layout.BuildOutput())
	require.Equal(t, "/home/deploy/bin/pickletrack-server", layout.BinaryLink())
	require.Equal(t, "/home/deploy/pickletrack/release-manifest.yaml", layout.ManifestPath())

	dirs := layout.Dirs()
	require.Contains(t, dirs, layout.SourceDir)
	require.Contains(t, dirs, layout.DataDir())
	require.Contains(t, dirs, layout.BinDir)
}
