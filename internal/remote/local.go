package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Local is the Host implementation backed by the local filesystem and
// /bin/sh. It serves the remote-only subcommands, which run on the target
// host itself, and the tests.
type Local struct{}

var _ Host = (*Local)(nil)

// NewLocal returns a host backed by the local machine.
func NewLocal() *Local {
	return &Local{}
}

// Run executes a shell command locally and returns its combined output.
func (l *Local) Run(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("run %q: %w", command, err)
	}

	return string(output), nil
}

// Upload copies a file between local paths, preserving the requested mode.
func (l *Local) Upload(ctx context.Context, localPath, remotePath string, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := os.Open(filepath.Clean(localPath))
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}

	defer func() {
		_ = source.Close()
	}()

	destination, err := os.OpenFile(filepath.Clean(remotePath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}

	if _, err = io.Copy(destination, source); err != nil {
		_ = destination.Close()

		return fmt.Errorf("copy to %s: %w", remotePath, err)
	}

	return destination.Close()
}

// WriteFile writes data to a local path with the given mode.
func (l *Local) WriteFile(ctx context.Context, path string, data []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(filepath.Clean(path), data, mode)
}

// MkdirAll creates a directory tree; existing directories are a no-op.
func (l *Local) MkdirAll(_ context.Context, path string) error {
	return os.MkdirAll(path, 0o755)
}

// Remove deletes a single file or empty directory.
func (l *Local) Remove(_ context.Context, path string) error {
	return os.Remove(path)
}

// RemoveAll deletes a path and everything below it.
func (l *Local) RemoveAll(_ context.Context, path string) error {
	return os.RemoveAll(path)
}

// ReadDir lists a directory.
func (l *Local) ReadDir(_ context.Context, path string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))

	for _, entry := range entries {
		info, infoErr := entry.Info()
		if infoErr != nil {
			return nil, infoErr
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// Symlink creates a symbolic link.
func (l *Local) Symlink(_ context.Context, target, link string) error {
	return os.Symlink(target, link)
}

// Rename atomically replaces newPath with oldPath.
func (l *Local) Rename(_ context.Context, oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// ReadLink returns the target of a symbolic link.
func (l *Local) ReadLink(_ context.Context, link string) (string, error) {
	return os.Readlink(link)
}

// Stat resolves a path, following links.
func (l *Local) Stat(_ context.Context, path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Close is a no-op for the local host.
func (l *Local) Close() error {
	return nil
}
