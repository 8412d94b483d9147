package version

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestShortAndFull verifies the version strings include the expected parts.
func TestShortAndFull(t *testing.T) {
	t.Parallel()

	require.Equal(t, Version, Short())
	require.Contains(t, Full(), "version: "+Version)
	require.Contains(t, Full(), "commit: "+Commit)
}

// TestAttachCobraVersionCommand verifies the subcommand prints the full version.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "pickle-deploy"}
	AttachCobraVersionCommand(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), Full())
}
