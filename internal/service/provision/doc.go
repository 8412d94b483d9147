// Package provision installs the compiler toolchain and OS build
// dependencies on a freshly created host. It is a one-shot operation:
// fail-fast, no retries, no partial-success reporting.
package provision
