// tarsnap-prune qa — run the sequential check harness: unit tests, type
// check, style check, fail-fast, ending in a literal SUCCESS or FAILURE line.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/internal/qa"
	"github.com/c4rlo/tarsnap-prune/pkg/errs"
)

func NewQACmd() *cobra.Command {
	var statusQuirk bool

	cmd := &cobra.Command{
		Use:   "qa",
		Short: "Run unit tests, type checks and style checks, fail-fast",
		Long: `QA runs three checks in fixed order: go test, go vet, gofmt. Each check
only runs if every check before it passed, and the last output line is
always SUCCESS or FAILURE.

By default the process exits non-zero on FAILURE; --status-quirk forces
a zero exit for callers that scrape the marker instead of the exit code.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := qa.NewRunner(os.Stdout, qa.DefaultChecks(".", os.Stdout, os.Stderr)...)

			res := runner.Run(cmd.Context())
			if res.Passed || statusQuirk {
				return nil
			}
			return errs.Wrap(res.Err, errs.ErrCheckFailed, "qa."+res.Failed)
		},
	}

	cmd.Flags().BoolVar(&statusQuirk, "status-quirk", false, "Exit zero even on FAILURE (marker-only contract)")
	return cmd
}
