package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The taxonomy is flat: every error
// belongs to exactly one kind and there is no further subclassing.
type Kind uint8

const (
	// KindTransport covers connection, authentication and copy failures.
	KindTransport Kind = iota + 1
	// KindProvision covers toolchain and package install failures.
	KindProvision
	// KindBuild covers remote compilation failures.
	KindBuild
	// KindSwitch covers symlink removal or creation failures.
	KindSwitch
	// KindRestart covers supervisor trigger failures.
	KindRestart
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProvision:
		return "provision"
	case KindBuild:
		return "build"
	case KindSwitch:
		return "switch"
	case KindRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Error is a step failure carrying its kind and the failing step name.
// The remaining pipeline steps are never executed after one is produced.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Step is the name of the step that failed.
	Step string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s error in step %q: %v", e.Kind, e.Step, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error produced by the pipeline.
func KindOf(err error) (Kind, bool) {
	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind, true
	}

	return 0, false
}
