package release

import (
	"crypto/sha512"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestManifest_AddAndRoundtrip verifies checksums and YAML round-tripping.
func TestManifest_AddAndRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "go.mod")
	contents := []byte("module example.com/pickletrack\n")
	require.NoError(t, os.WriteFile(file, contents, 0o644))

	m := NewManifest()
	require.NoError(t, m.Add("go.mod", file))

	want := sha512.Sum512(contents)
	require.Equal(t, base64.StdEncoding.EncodeToString(want[:]), m.Files["go.mod"])

	data, err := m.Encode()
	require.NoError(t, err)

	decoded, err := DecodeManifest(data)
	require.NoError(t, err)
	require.Equal(t, m.Version, decoded.Version)
	require.Equal(t, m.Files, decoded.Files)
}

// TestFileChecksum_Missing verifies the error path for absent files.
func TestFileChecksum_Missing(t *testing.T) {
	t.Parallel()

	_, err := FileChecksum(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
