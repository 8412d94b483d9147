package release

import (
	"errors"
	"regexp"
)

// ErrNoSnapshots is returned when no dated snapshot exists in the data directory.
var ErrNoSnapshots = errors.New("no dated snapshots found")

// snapshotName matches dated data files, e.g. 20170901.json.
var snapshotName = regexp.MustCompile(`^\d{8}\.json$`)

// IsSnapshot reports whether the file name is a dated data snapshot.
// Snapshots are append-only artifacts produced by the scraper; the
// pipeline only ever selects them, never edits them.
func IsSnapshot(name string) bool {
	return snapshotName.MatchString(name)
}

// LatestSnapshot returns the newest dated snapshot among the given file
// names. Dated names sort chronologically as strings, so the lexical
// maximum is the newest day.
func LatestSnapshot(names []string) (string, error) {
	latest := ""

	for _, name := range names {
		if !IsSnapshot(name) {
			continue
		}

		if name > latest {
			latest = name
		}
	}

	if latest == "" {
		return "", ErrNoSnapshots
	}

	return latest, nil
}
