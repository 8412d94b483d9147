// Package deploy implements the full release pipeline against the fixed
// target host: ship the artifact set (build manifest, lockfile, source
// tree, static assets, operator scripts), then build, switch and restart
// over one blocking session.
//
// Every step is fail-fast: the first failure aborts the remaining steps
// with a typed error, and side effects already applied are not rolled
// back. A failure anywhere before the switch step leaves the previously
// deployed release untouched.
package deploy
