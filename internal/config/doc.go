// Package config defines deployment settings shared by all subcommands and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the fixed target host identity and the remote
// filesystem layout (source, static and executable directories).
package config
