package qa

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/c4rlo/tarsnap-prune/pkg/errs"
)

// DefaultChecks returns the standard check sequence for dir: unit tests,
// type check, style check. Sub-tool output is inherited on out/errOut, not
// filtered.
func DefaultChecks(dir string, out, errOut io.Writer) []Check {
	return []Check{
		{
			Name:  "unit-tests",
			Label: "Running unit tests...",
			Run:   commandCheck(dir, out, errOut, "go", "test", "./..."),
		},
		{
			Name:  "type-check",
			Label: "Type-checking...",
			Run:   commandCheck(dir, out, errOut, "go", "vet", "./..."),
		},
		{
			Name:  "style",
			Label: "Running style checks...",
			Run:   gofmtCheck(dir, errOut),
		},
	}
}

// commandCheck wraps an external command as a Check run func; any non-zero
// exit status is a failure.
func commandCheck(dir string, out, errOut io.Writer, name string, args ...string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Dir = dir
		cmd.Stdout = out
		cmd.Stderr = errOut
		if err := cmd.Run(); err != nil {
			return errs.Wrap(err, errs.ErrCheckFailed, "qa."+name)
		}
		return nil
	}
}

// gofmtCheck runs `gofmt -l` over dir. gofmt exits zero even when files
// need reformatting, so any listed file is treated as a failure.
func gofmtCheck(dir string, errOut io.Writer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, "gofmt", "-l", ".")
		cmd.Dir = dir

		var listed bytes.Buffer
		cmd.Stdout = &listed
		cmd.Stderr = errOut

		if err := cmd.Run(); err != nil {
			return errs.Wrap(err, errs.ErrCheckFailed, "qa.gofmt")
		}
		if files := strings.TrimSpace(listed.String()); files != "" {
			return errs.Newf(errs.ErrCheckFailed, "qa.gofmt",
				"files need reformatting:\n%s", files).
				WithAdvice("run gofmt -w on the listed files")
		}
		return nil
	}
}
