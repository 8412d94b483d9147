package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/pickletrack/pickle-deploy/internal/config"
	"github.com/pickletrack/pickle-deploy/internal/logger"
)

// SSH is the Host implementation for the fixed remote target. Commands run
// over one authenticated SSH connection; file operations use an SFTP
// subsystem channel on the same connection.
type SSH struct {
	// client is the underlying SSH connection.
	client *ssh.Client
	// files is the SFTP channel used for all filesystem operations.
	files *sftp.Client
}

var _ Host = (*SSH)(nil)

// errIdentityRequired is returned when no private key path is configured.
var errIdentityRequired = errors.New("identity_file must be provided for ssh connections")

// DialSSH opens the blocking session to the configured host. The caller
// owns the returned host and must Close it.
func DialSSH(ctx context.Context, cfg *config.Config) (*SSH, error) {
	clientConfig, err := clientConfigFrom(cfg)
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: cfg.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Host, err)
	}

	sshConn, channels, requests, err := ssh.NewClientConn(conn, cfg.Host, clientConfig)
	if err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("ssh handshake with %s: %w", cfg.Host, err)
	}

	client := ssh.NewClient(sshConn, channels, requests)

	files, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("open sftp channel: %w", err)
	}

	logger.InfoKV(ctx, "Connected to target host", "host", cfg.Host, "user", cfg.User)

	return &SSH{client: client, files: files}, nil
}

// clientConfigFrom builds the SSH client configuration from settings.
func clientConfigFrom(cfg *config.Config) (*ssh.ClientConfig, error) {
	if cfg.IdentityFile == "" {
		return nil, errIdentityRequired
	}

	keyData, err := os.ReadFile(filepath.Clean(cfg.IdentityFile))
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey() //nolint:gosec // Verification is opt-in via known_hosts_file.
	if cfg.KnownHostsFile != "" {
		hostKeyCallback, err = knownhosts.New(filepath.Clean(cfg.KnownHostsFile))
		if err != nil {
			return nil, fmt.Errorf("load known hosts: %w", err)
		}
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.Timeout,
	}, nil
}

// Run executes a shell command on the host and waits for completion.
// The session is torn down if the context is cancelled mid-command.
func (s *SSH) Run(ctx context.Context, command string) (string, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}

	defer func() {
		_ = session.Close()
	}()

	type commandResult struct {
		output []byte
		err    error
	}

	results := make(chan commandResult, 1)

	go func() {
		output, runErr := session.CombinedOutput(command)
		results <- commandResult{output: output, err: runErr}
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)

		return "", ctx.Err()
	case result := <-results:
		if result.err != nil {
			return string(result.output), fmt.Errorf("run %q: %w", command, result.err)
		}

		return string(result.output), nil
	}
}

// Upload copies a local file to the host over SFTP.
func (s *SSH) Upload(ctx context.Context, localPath, remotePath string, mode os.FileMode) error {
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

	destination, err := s.files.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}

	if _, err = io.Copy(destination, source); err != nil {
		_ = destination.Close()

		return fmt.Errorf("copy to %s: %w", remotePath, err)
	}

	if err = destination.Close(); err != nil {
		return fmt.Errorf("close %s: %w", remotePath, err)
	}

	if err = s.files.Chmod(remotePath, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", remotePath, err)
	}

	return nil
}

// WriteFile writes data to a file on the host over SFTP.
func (s *SSH) WriteFile(ctx context.Context, path string, data []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	destination, err := s.files.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err = destination.Write(data); err != nil {
		_ = destination.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	if err = destination.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return s.files.Chmod(path, mode)
}

// MkdirAll creates a directory tree on the host; existing directories are a no-op.
func (s *SSH) MkdirAll(_ context.Context, path string) error {
	return s.files.MkdirAll(path)
}

// Remove deletes a single file or empty directory on the host.
func (s *SSH) Remove(_ context.Context, path string) error {
	return s.files.Remove(path)
}

// RemoveAll deletes a path and everything below it on the host.
func (s *SSH) RemoveAll(_ context.Context, path string) error {
	return s.files.RemoveAll(path)
}

// ReadDir lists a directory on the host.
func (s *SSH) ReadDir(_ context.Context, path string) ([]os.FileInfo, error) {
	return s.files.ReadDir(path)
}

// Symlink creates a symbolic link on the host.
func (s *SSH) Symlink(_ context.Context, target, link string) error {
	return s.files.Symlink(target, link)
}

// Rename atomically replaces newPath with oldPath using POSIX rename
// semantics, so a link is never observed missing during a switch.
func (s *SSH) Rename(_ context.Context, oldPath, newPath string) error {
	return s.files.PosixRename(oldPath, newPath)
}

// ReadLink returns the target of a symbolic link on the host.
func (s *SSH) ReadLink(_ context.Context, link string) (string, error) {
	return s.files.ReadLink(link)
}

// Stat resolves a path on the host, following links.
func (s *SSH) Stat(_ context.Context, path string) (os.FileInfo, error) {
	return s.files.Stat(path)
}

// Close tears down the SFTP channel and the SSH connection.
func (s *SSH) Close() error {
	sftpErr := s.files.Close()

	if err := s.client.Close(); err != nil {
		return err
	}

	return sftpErr
}
