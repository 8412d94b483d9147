package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeProjectFixture lays out a minimal Pickletrack checkout.
func writeProjectFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"go.mod":                "module example.com/pickletrack\n",
		"go.sum":                "example.com/dep v1.0.0 h1:abc\n",
		"cmd/server/main.go":    "package main\n",
		"internal/bars/bars.go": "package bars\n",
		"static/index.html":     "<html></html>\n",
		"static/data/.gitkeep":  "",
		"scripts/tail-logs.sh":  "#!/bin/sh\n",
		"bin/leftover-artifact": "stale",
		".git/config":           "[core]\n",
	}

	for name, contents := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	}

	return dir
}

// TestCollectArtifacts verifies mapping onto the remote layout and exclusions.
func TestCollectArtifacts(t *testing.T) {
	t.Parallel()

	project := writeProjectFixture(t)
	layout := Layout{
		SourceDir: "/srv/pickletrack",
		StaticDir: "/srv/pickletrack/static",
		BinDir:    "/srv/bin",
		Binary:    "pickletrack-server",
	}

	set, err := CollectArtifacts(project, layout)
	require.NoError(t, err)

	require.Equal(t, "/srv/pickletrack/go.mod", set.BuildManifest.Remote)
	require.Equal(t, "/srv/pickletrack/go.sum", set.Lockfile.Remote)

	remotes := make([]string, 0, len(set.Sources))
	for _, artifact := range set.Sources {
		remotes = append(remotes, artifact.Remote)
	}

	require.Contains(t, remotes, "/srv/pickletrack/cmd/server/main.go")
	require.Contains(t, remotes, "/srv/pickletrack/internal/bars/bars.go")

	// The manifest pair ships as dedicated artifacts, and non-source
	// subtrees stay out of the source transfer.
	require.NotContains(t, remotes, "/srv/pickletrack/go.mod")
	for _, remote := range remotes {
		require.NotContains(t, remote, "/.git/")
		require.NotContains(t, remote, "/bin/")
		require.NotContains(t, remote, "/static/")
		require.NotContains(t, remote, "/scripts/")
	}

	require.Len(t, set.Static, 2)
	require.Len(t, set.Scripts, 1)
	require.Equal(t, "/srv/bin/tail-logs.sh", set.Scripts[0].Remote)
	require.Equal(t, os.FileMode(0o755), set.Scripts[0].Mode)

	// Shipping order: manifest, lockfile, sources, static, scripts.
	all := set.All()
	require.Equal(t, set.BuildManifest, all[0])
	require.Equal(t, set.Lockfile, all[1])
	require.Equal(t, set.Scripts[0], all[len(all)-1])
}

// TestCollectArtifacts_RequiresLockfile verifies the lockfile is mandatory.
func TestCollectArtifacts_RequiresLockfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o644))

	_, err := CollectArtifacts(dir, Layout{SourceDir: "/srv", StaticDir: "/srv/static", BinDir: "/srv/bin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "lockfile")
}

// TestCollectArtifacts_RequiresManifest verifies go.mod is mandatory.
func TestCollectArtifacts_RequiresManifest(t *testing.T) {
	t.Parallel()

	_, err := CollectArtifacts(t.TempDir(), Layout{SourceDir: "/srv", StaticDir: "/srv/static", BinDir: "/srv/bin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest")
}
