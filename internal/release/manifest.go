package release

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pickletrack/pickle-deploy/internal/version"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// ManifestFilename records the shipped release on the host.
	ManifestFilename = "release-manifest.yaml"

	// ChecksumFunction is used to hash shipped artifacts.
	ChecksumFunction crypto.Hash = crypto.SHA512

	// defaultMapCapacity is the default initial capacity for maps and slices.
	defaultMapCapacity = 16
)

var errHashUnavailable = errors.New("hash function unavailable")

// Manifest identifies one shipped release: the tool version that produced
// it and the checksums of every shipped file, keyed by remote-relative
// name. It is written to the source directory as the last ship step, so a
// complete manifest implies a complete artifact set.
type Manifest struct {
	// Version is the deploy tool version that shipped the release.
	Version string `yaml:"version"`
	// Files maps shipped file names to their base64-encoded checksums.
	Files map[string]string `yaml:"files"`
}

// NewManifest produces a Manifest initialized with defaults.
func NewManifest() *Manifest {
	return &Manifest{
		Version: version.Short(),
		Files:   make(map[string]string, defaultMapCapacity),
	}
}

// Add hashes the local file and records it under the given shipped name.
func (m *Manifest) Add(name, localPath string) error {
	checksum, err := FileChecksum(localPath)
	if err != nil {
		return err
	}

	m.Files[name] = base64.StdEncoding.EncodeToString(checksum)

	return nil
}

// Encode serializes the manifest to YAML.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	return data, nil
}

// DecodeManifest parses a manifest previously written to the host.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// FileChecksum returns checksum bytes for a file using ChecksumFunction.
func FileChecksum(path string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	if !ChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := ChecksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}
