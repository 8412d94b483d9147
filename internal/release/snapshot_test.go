package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIsSnapshot verifies the dated snapshot naming rule.
func TestIsSnapshot(t *testing.T) {
	t.Parallel()

	require.True(t, IsSnapshot("20170901.json"))
	require.True(t, IsSnapshot("20251231.json"))

	require.False(t, IsSnapshot("current.json"))
	require.False(t, IsSnapshot("2017091.json"))
	require.False(t, IsSnapshot("20170901.json.bak"))
	require.False(t, IsSnapshot("20170901.yaml"))
	require.False(t, IsSnapshot(""))
}

// TestLatestSnapshot verifies newest-day selection and the empty case.
func TestLatestSnapshot(t *testing.T) {
	t.Parallel()

	latest, err := LatestSnapshot([]string{
		"20170831.json",
		"20170901.json",
		"current.json",
		"notes.txt",
	})
	require.NoError(t, err)
	require.Equal(t, "20170901.json", latest)

	_, err = LatestSnapshot([]string{"current.json", "index.html"})
	require.ErrorIs(t, err, ErrNoSnapshots)

	_, err = LatestSnapshot(nil)
	require.ErrorIs(t, err, ErrNoSnapshots)
}
