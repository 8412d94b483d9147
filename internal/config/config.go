package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the fixed target host and remote layout for the pipeline.
// There is exactly one target host; per-run flags never override it.
type Config struct {
	// Host is the SSH address of the target host in host:port form.
	Host string `yaml:"host"`
	// User is the SSH login on the target host.
	User string `yaml:"user"`
	// IdentityFile is the path to the private key used for authentication.
	IdentityFile string `yaml:"identity_file"`
	// KnownHostsFile is the path to a known_hosts file for host key checks.
	// When empty, host keys are not verified.
	KnownHostsFile string `yaml:"known_hosts_file"`
	// ProjectDir is the local checkout that gets shipped to the host.
	ProjectDir string `yaml:"project_dir"`
	// SourceDir is the remote directory holding manifest, lockfile and sources.
	SourceDir string `yaml:"source_dir"`
	// StaticDir is the remote directory holding static assets and snapshots.
	StaticDir string `yaml:"static_dir"`
	// BinDir is the remote directory holding operator scripts and the
	// active-binary symlink.
	BinDir string `yaml:"bin_dir"`
	// Service is the supervisor unit name restarted after a switch.
	Service string `yaml:"service"`
	// Binary is the name of the compiled executable and of its symlink.
	Binary string `yaml:"binary"`
	// Snapshot optionally pins the dated data file to activate.
	// When empty, the newest dated snapshot on the host is selected.
	Snapshot string `yaml:"snapshot"`
	// BuildTarget is the package path compiled by the remote builder.
	BuildTarget string `yaml:"build_target"`
	// BuildCommand overrides the release build command entirely.
	// Intended for hosts with unusual toolchains.
	BuildCommand string `yaml:"build_command"`
	// RestartCommand is the supervisor restart instruction.
	RestartCommand string `yaml:"restart_command"`
	// ToolchainVersion is the Go version installed by provisioning.
	ToolchainVersion string `yaml:"toolchain_version"`
	// Timeout is the duration for establishing the SSH session.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for deployment settings.
	DefaultConfigFilename = "pickle-deploy.yaml"

	// DefaultService is the supervisor unit restarted after activation.
	DefaultService = "pickletrack"

	// DefaultBinary is the executable produced by the release build.
	DefaultBinary = "pickletrack-server"

	// DefaultBuildTarget is the package compiled by the remote builder.
	DefaultBuildTarget = "./cmd/server"

	// DefaultToolchainVersion is installed when provisioning a fresh host.
	DefaultToolchainVersion = "1.25.0"

	// DefaultTimeout is the default duration for establishing the session.
	DefaultTimeout = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errHostRequired is returned when the target host address is missing.
	errHostRequired = errors.New("target host must be provided")
	// errUserRequired is returned when the SSH user is missing.
	errUserRequired = errors.New("ssh user must be provided")
	// errLayoutRequired is returned when a remote directory is missing.
	errLayoutRequired = errors.New("source_dir, static_dir and bin_dir must be provided")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file may reference private key material.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and applies defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Host == "" {
		return errHostRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.Host); err != nil {
		return fmt.Errorf("invalid host address: %w", err)
	}

	if cfg.User == "" {
		return errUserRequired
	}

	if cfg.SourceDir == "" || cfg.StaticDir == "" || cfg.BinDir == "" {
		return errLayoutRequired
	}

	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}

	if cfg.Service == "" {
		cfg.Service = DefaultService
	}

	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}

	if cfg.BuildTarget == "" {
		cfg.BuildTarget = DefaultBuildTarget
	}

	if cfg.RestartCommand == "" {
		cfg.RestartCommand = "sudo systemctl restart " + cfg.Service
	}

	if cfg.ToolchainVersion == "" {
		cfg.ToolchainVersion = DefaultToolchainVersion
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return nil
}
