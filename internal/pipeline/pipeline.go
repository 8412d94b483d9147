package pipeline

import (
	"context"
	"errors"

	"github.com/pickletrack/pickle-deploy/internal/logger"
)

// Step is one result-typed stage of the pipeline. Run reports success or
// failure; the step's Kind classifies whatever failure it returns.
type Step struct {
	// Name identifies the step in logs and error messages.
	Name string
	// Kind classifies failures produced by this step.
	Kind Kind
	// Run executes the step.
	Run func(ctx context.Context) error
}

// Run executes the steps strictly in order and stops at the first failure.
// Nothing is retried and already-applied side effects are not rolled back;
// the caller sees the first failing step's error with its kind attached.
func Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return &Error{Kind: step.Kind, Step: step.Name, Err: err}
		}

		logger.InfoKV(ctx, "Running step", "step", step.Name)

		if err := step.Run(ctx); err != nil {
			// Steps may return an already-classified error from a nested
			// pipeline; keep the original kind in that case.
			var pipelineErr *Error
			if errors.As(err, &pipelineErr) {
				return err
			}

			return &Error{Kind: step.Kind, Step: step.Name, Err: err}
		}
	}

	return nil
}
