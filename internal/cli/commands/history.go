// tarsnap-prune history — show past prune runs from the state database.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/pkg/pprint"
)

func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:          "history",
		Short:        "Show past prune runs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			recs, err := rt.State.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(recs)
			}

			if len(recs) == 0 {
				pprint.Info("no prune runs recorded yet")
				return nil
			}

			table := pprint.NewTable("TIME", "KEEP SPEC", "DELETED", "REMAINING", "MODE")
			for _, rec := range recs {
				mode := "live"
				if rec.DryRun {
					mode = "dry-run"
				}
				table.AddRow(
					rec.Time.Format("2006-01-02 15:04:05"),
					rec.KeepSpec,
					fmt.Sprintf("%d", len(rec.Deleted)),
					fmt.Sprintf("%d", rec.Remaining),
					mode,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 = all)")
	return cmd
}
