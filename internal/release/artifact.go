package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

const (
	// sourceFileMode is applied to shipped manifest, lockfile and sources.
	sourceFileMode os.FileMode = 0o644
	// scriptFileMode is applied to shipped operator scripts.
	scriptFileMode os.FileMode = 0o755
)

var (
	// errNoBuildManifest is returned when the project has no go.mod.
	errNoBuildManifest = errors.New("project has no build manifest (go.mod)")
	// errNoLockfile is returned when the project has no go.sum.
	// The remote build is pinned to the lockfile, so it is mandatory.
	errNoLockfile = errors.New("project has no dependency lockfile (go.sum)")
)

// skippedSourceDirs are project subtrees excluded from the source tree
// transfer: static assets and scripts ship to their own directories, bin
// holds local build output, .git is never shipped.
var skippedSourceDirs = map[string]struct{}{
	".git":    {},
	"bin":     {},
	"scripts": {},
	"static":  {},
}

// Artifact is one file of a release: where it lives locally, where it
// lands on the host and the mode it is shipped with.
type Artifact struct {
	// Local is the absolute local path.
	Local string
	// Remote is the destination path on the host.
	Remote string
	// Name is the remote-relative name recorded in the release manifest.
	Name string
	// Mode is the file mode applied on the host.
	Mode os.FileMode
}

// ArtifactSet is everything shipped for one deploy, in shipping order:
// build manifest, lockfile, source tree, static assets, operator scripts.
// The set is immutable once collected and superseded wholesale by the
// next deploy.
type ArtifactSet struct {
	// BuildManifest is the module manifest (go.mod).
	BuildManifest Artifact
	// Lockfile is the dependency lockfile (go.sum).
	Lockfile Artifact
	// Sources is the source tree, relative paths preserved.
	Sources []Artifact
	// Static is the static asset tree.
	Static []Artifact
	// Scripts are operator scripts placed in the executable directory.
	Scripts []Artifact
}

// All returns every artifact of the set in shipping order.
func (s *ArtifactSet) All() []Artifact {
	all := make([]Artifact, 0, 2+len(s.Sources)+len(s.Static)+len(s.Scripts))
	all = append(all, s.BuildManifest, s.Lockfile)
	all = append(all, s.Sources...)
	all = append(all, s.Static...)
	all = append(all, s.Scripts...)

	return all
}

// CollectArtifacts walks the local project and maps each file onto the
// remote layout. The build manifest and lockfile are mandatory; static
// assets and scripts are shipped only if the project has them.
func CollectArtifacts(projectDir string, layout Layout) (*ArtifactSet, error) {
	set := &ArtifactSet{}

	manifestPath := filepath.Join(projectDir, "go.mod")
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("%w: %s", errNoBuildManifest, manifestPath)
	}

	set.BuildManifest = Artifact{
		Local:  manifestPath,
		Remote: path.Join(layout.SourceDir, "go.mod"),
		Name:   "go.mod",
		Mode:   sourceFileMode,
	}

	lockfilePath := filepath.Join(projectDir, "go.sum")
	if _, err := os.Stat(lockfilePath); err != nil {
		return nil, fmt.Errorf("%w: %s", errNoLockfile, lockfilePath)
	}

	set.Lockfile = Artifact{
		Local:  lockfilePath,
		Remote: path.Join(layout.SourceDir, "go.sum"),
		Name:   "go.sum",
		Mode:   sourceFileMode,
	}

	sources, err := collectTree(projectDir, layout.SourceDir, sourceFileMode, skipSources)
	if err != nil {
		return nil, fmt.Errorf("collect sources: %w", err)
	}

	set.Sources = sources

	staticDir := filepath.Join(projectDir, "static")
	if _, err = os.Stat(staticDir); err == nil {
		set.Static, err = collectTree(staticDir, layout.StaticDir, sourceFileMode, nil)
		if err != nil {
			return nil, fmt.Errorf("collect static assets: %w", err)
		}
	}

	scriptsDir := filepath.Join(projectDir, "scripts")
	if _, err = os.Stat(scriptsDir); err == nil {
		set.Scripts, err = collectTree(scriptsDir, layout.BinDir, scriptFileMode, nil)
		if err != nil {
			return nil, fmt.Errorf("collect operator scripts: %w", err)
		}
	}

	return set, nil
}

// skipSources excludes non-source subtrees and the root manifest pair,
// which ship as dedicated artifacts.
func skipSources(relPath string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		_, skip := skippedSourceDirs[relPath]
		return skip
	}

	return relPath == "go.mod" || relPath == "go.sum"
}

// collectTree maps every file under localRoot onto remoteRoot, keeping
// relative paths. The skip callback may prune directories and files.
func collectTree(
	localRoot, remoteRoot string,
	mode os.FileMode,
	skip func(relPath string, entry fs.DirEntry) bool,
) ([]Artifact, error) {
	var artifacts []Artifact

	err := filepath.WalkDir(localRoot, func(walkPath string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, relErr := filepath.Rel(localRoot, walkPath)
		if relErr != nil {
			return relErr
		}

		if relPath == "." {
			return nil
		}

		if skip != nil && skip(relPath, entry) {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.IsDir() {
			return nil
		}

		artifacts = append(artifacts, Artifact{
			Local:  walkPath,
			Remote: path.Join(remoteRoot, filepath.ToSlash(relPath)),
			Name:   filepath.ToSlash(relPath),
			Mode:   mode,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return artifacts, nil
}
