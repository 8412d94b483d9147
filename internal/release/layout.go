package release

import (
	"path"

	"github.com/pickletrack/pickle-deploy/internal/config"
)

// Layout is the typed view of the remote filesystem paths a release
// touches. Paths are POSIX; the target host is always a Unix machine.
type Layout struct {
	// SourceDir holds the build manifest, lockfile and source tree.
	SourceDir string
	// StaticDir holds static assets; its data subdirectory holds snapshots.
	StaticDir string
	// BinDir holds operator scripts and the active-binary symlink.
	BinDir string
	// Binary is the name of the compiled executable and of its symlink.
	Binary string
}

// LayoutFromConfig builds the remote layout from deployment settings.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		SourceDir: cfg.SourceDir,
		StaticDir: cfg.StaticDir,
		BinDir:    cfg.BinDir,
		Binary:    cfg.Binary,
	}
}

// DataDir is the directory holding dated snapshots and the current-data link.
func (l Layout) DataDir() string {
	return path.Join(l.StaticDir, "data")
}

// CurrentDataLink is the symlink selecting the active snapshot.
func (l Layout) CurrentDataLink() string {
	return path.Join(l.DataDir(), "current.json")
}

// BuildOutput is where the remote builder writes the compiled executable.
func (l Layout) BuildOutput() string {
	return path.Join(l.SourceDir, "bin", l.Binary)
}

// BinaryLink is the active-binary symlink in the executable directory.
func (l Layout) BinaryLink() string {
	return path.Join(l.BinDir, l.Binary)
}

// ManifestPath is where the shipper records the release manifest.
func (l Layout) ManifestPath() string {
	return path.Join(l.SourceDir, ManifestFilename)
}

// Dirs returns every directory a deploy requires, in creation order.
func (l Layout) Dirs() []string {
	return []string{
		l.SourceDir,
		path.Join(l.SourceDir, "bin"),
		l.StaticDir,
		l.DataDir(),
		l.BinDir,
	}
}
