// Package release implements the remote build and switch stages: compile
// an optimized binary pinned to the shipped lockfile, then atomically
// repoint the active-binary and current-data symlinks.
//
// The stages run on the host. The deploy command drives them over SSH;
// the release subcommand runs them directly on the host's filesystem.
package release
