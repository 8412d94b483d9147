// Package remote abstracts the single target host behind the Host
// interface: shell command execution plus typed filesystem operations
// (upload, mkdir, symlink, atomic rename).
//
// The SSH implementation runs commands over golang.org/x/crypto/ssh and
// performs file operations over SFTP; the Local implementation backs the
// remote-only subcommands executed on the host itself and the tests.
//
// The host filesystem is shared mutable state with no locking discipline:
// two operators deploying concurrently race on the same paths. That race
// is an accepted limitation of the pipeline, not a handled case.
package remote
