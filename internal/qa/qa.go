// Package qa runs an ordered sequence of named checks with fail-fast
// semantics: each check's progress label is printed before it runs, the
// first failure aborts the remaining checks, and a final literal SUCCESS
// or FAILURE marker reports the aggregate outcome.
package qa

import (
	"context"
	"fmt"
	"io"
)

// Check is a single named sub-step. Run returns nil on success.
type Check struct {
	Name  string
	Label string
	Run   func(ctx context.Context) error
}

// Result is the aggregate outcome of a Runner pass.
type Result struct {
	Passed bool
	Failed string // name of the first failing check, empty when Passed
	Err    error  // error from the first failing check
}

// Runner executes checks in order, writing progress to Out.
type Runner struct {
	Out    io.Writer
	Checks []Check
}

// NewRunner creates a Runner over the given checks.
func NewRunner(out io.Writer, checks ...Check) *Runner {
	return &Runner{Out: out, Checks: checks}
}

// Run executes the checks sequentially. A check only runs if every check
// before it succeeded. The final output line is always "SUCCESS" or
// "FAILURE".
func (r *Runner) Run(ctx context.Context) Result {
	for _, check := range r.Checks {
		fmt.Fprintln(r.Out, check.Label)
		if err := check.Run(ctx); err != nil {
			fmt.Fprintln(r.Out, "FAILURE")
			return Result{Failed: check.Name, Err: err}
		}
	}
	fmt.Fprintln(r.Out, "SUCCESS")
	return Result{Passed: true}
}
