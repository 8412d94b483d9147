// Package pipeline composes deployment stages into a fail-fast sequence.
//
// Each stage returns success or a typed error; Run stops at the first
// failure and never rolls back side effects already applied by earlier
// stages. The Kind taxonomy is flat: transport, provision, build, switch
// and restart failures, with no further subclassing.
package pipeline
