// Package status inspects the deployed release on the host: the two
// activation symlinks and the presence of the service process. It is the
// operator's first diagnostic after a failed step, since partial state is
// always repaired manually.
package status
