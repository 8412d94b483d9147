package remote

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLocal_Run verifies command execution and non-zero status reporting.
func TestLocal_Run(t *testing.T) {
	t.Parallel()

	host := NewLocal()

	output, err := host.Run(context.Background(), "echo shipping")
	require.NoError(t, err)
	require.Equal(t, "shipping\n", output)

	_, err = host.Run(context.Background(), "exit 3")
	require.Error(t, err)
}

// TestLocal_UploadPreservesMode verifies file copy with the requested mode.
func TestLocal_UploadPreservesMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "release.sh")
	dst := filepath.Join(dir, "bin", "release.sh")

	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

	host := NewLocal()
	require.NoError(t, host.Upload(context.Background(), src, dst, 0o755))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	contents, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\n", string(contents))
}

// TestLocal_MkdirAllIdempotent verifies repeated directory creation is a no-op.
func TestLocal_MkdirAllIdempotent(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "static", "data")
	host := NewLocal()

	require.NoError(t, host.MkdirAll(context.Background(), dir))
	require.NoError(t, host.MkdirAll(context.Background(), dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

// TestLocal_SymlinkRenameReadLink verifies the link primitives used by the switcher.
func TestLocal_SymlinkRenameReadLink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()
	host := NewLocal()

	target := filepath.Join(dir, "20170901.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	link := filepath.Join(dir, "current.json")
	staging := link + ".new"

	require.NoError(t, host.Symlink(ctx, "20170901.json", staging))
	require.NoError(t, host.Rename(ctx, staging, link))

	got, err := host.ReadLink(ctx, link)
	require.NoError(t, err)
	require.Equal(t, "20170901.json", got)

	// Renaming a fresh staging link over the existing one replaces it.
	newTarget := filepath.Join(dir, "20170902.json")
	require.NoError(t, os.WriteFile(newTarget, []byte("{}"), 0o644))
	require.NoError(t, host.Symlink(ctx, "20170902.json", staging))
	require.NoError(t, host.Rename(ctx, staging, link))

	got, err = host.ReadLink(ctx, link)
	require.NoError(t, err)
	require.Equal(t, "20170902.json", got)

	// The link resolves through Stat at every point.
	_, err = host.Stat(ctx, link)
	require.NoError(t, err)
}

// TestLocal_ReadDir verifies directory listing.
func TestLocal_ReadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20170901.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20170902.json"), []byte("{}"), 0o644))

	host := NewLocal()

	infos, err := host.ReadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, infos, 2)
}
