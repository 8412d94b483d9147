package remote

import (
	"context"
	"os"
)

// Host models the target host's filesystem and shell as typed operations.
// Remote paths are treated as resource handles with explicit operations
// instead of ordered side-effecting shell lines, so callers can state and
// check pre/post-conditions (directories exist, link targets resolve).
//
// Two implementations exist: SSH for the fixed remote host and Local for
// commands executed on the host itself (the remote-only subcommands).
type Host interface {
	// Run executes a shell command and returns its combined output.
	// A non-zero exit status is reported as an error.
	Run(ctx context.Context, command string) (string, error)
	// Upload copies a local file to the given path with the given mode.
	Upload(ctx context.Context, localPath, remotePath string, mode os.FileMode) error
	// WriteFile writes data to the given path with the given mode.
	WriteFile(ctx context.Context, path string, data []byte, mode os.FileMode) error
	// MkdirAll creates the directory and its parents.
	// Re-creation of an existing directory is a no-op.
	MkdirAll(ctx context.Context, path string) error
	// Remove deletes a single file or empty directory.
	Remove(ctx context.Context, path string) error
	// RemoveAll deletes a path and everything below it.
	RemoveAll(ctx context.Context, path string) error
	// ReadDir lists a directory.
	ReadDir(ctx context.Context, path string) ([]os.FileInfo, error)
	// Symlink creates a symbolic link at link pointing to target.
	Symlink(ctx context.Context, target, link string) error
	// Rename atomically moves oldPath over newPath, replacing it.
	Rename(ctx context.Context, oldPath, newPath string) error
	// ReadLink returns the target of a symbolic link.
	ReadLink(ctx context.Context, link string) (string, error)
	// Stat resolves a path (following links) and returns its file info.
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	// Close releases the underlying session, if any.
	Close() error
}
