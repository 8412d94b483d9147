// Package release models the domain of one deploy: the remote filesystem
// layout as typed path handles, dated data snapshots, the artifact set
// shipped for a release, and the checksummed release manifest that
// identifies it on the host.
//
// The invariant the rest of the pipeline leans on: the active-binary and
// current-data symlinks, when present, always resolve to an existing,
// complete file. The switch step repoints them with an atomic rename, so
// no reader ever observes a missing target.
package release
