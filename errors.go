package glyphline

import (
	"errors"
	"fmt"
)

// ErrNoRuns is returned when a job has nothing to render.
var ErrNoRuns = errors.New("glyphline: no runs")

// RunError reports a failure that aborts a job while loading or shaping
// one of its runs.
type RunError struct {
	// Run is the index of the run in the job.
	Run int

	// Font is the font name as written in the job.
	Font string

	// Op is the failed step: "load" or "shape".
	Op string

	// Err is the underlying error.
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("glyphline: run %d (%s): %s: %v", e.Run, e.Font, e.Op, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
