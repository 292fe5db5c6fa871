// tarsnap-prune prune — apply a retention spec and delete what it doesn't keep.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/internal/core/logger"
	"github.com/c4rlo/tarsnap-prune/internal/core/state"
	"github.com/c4rlo/tarsnap-prune/internal/prune"
	"github.com/c4rlo/tarsnap-prune/internal/tarsnap"
	"github.com/c4rlo/tarsnap-prune/pkg/pprint"
)

func NewPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune [KEEP_SPEC]",
		Short: "Delete archives not kept by the retention spec",
		Long: `Prune groups archives by base name and, per group, keeps the newest
archives selected by the keep spec: a comma-separated list of
<count><unit> atoms (units: s min h d w mon y). Example: 7d,4w,12mon
keeps one archive per day for 7 days, per ISO week for 4 weeks, and per
month for 12 months. Everything else is deleted.`,
		Example: `  tarsnap-prune prune 7d,4w,12mon
  tarsnap-prune prune 7d,4w,12mon --dry-run
  tarsnap-prune prune --keyfile /root/tarsnap.key 30d`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			keepStr := rt.Config.Prune.Keep
			if len(args) == 1 {
				keepStr = args[0]
			}
			if keepStr == "" {
				return fmt.Errorf("no keep spec: pass one as argument or set prune.keep in config")
			}
			specs, err := prune.ParseKeepSpecs(keepStr)
			if err != nil {
				return err
			}

			client := tarsnap.New(rt.Config.Tarsnap.Binary, rt.Keyfile(), rt.Log)

			sp := pprint.NewSpinner("Fetching archive list")
			sp.Start()
			listing, err := client.ListArchives(cmd.Context())
			sp.Stop()
			if err != nil {
				return err
			}

			groups, err := prune.ParseListing(listing)
			if err != nil {
				return err
			}

			plan := prune.BuildPlan(groups, specs)
			dryRun := rt.Flags.DryRun
			plan.WriteReport(os.Stdout, dryRun)

			rec := state.RunRecord{
				ID:        uuid.NewString(),
				Time:      time.Now().UTC(),
				KeepSpec:  keepStr,
				Deleted:   plan.Delete,
				Remaining: len(plan.Remaining),
				DryRun:    dryRun,
			}

			if !dryRun {
				if len(plan.Delete) > 0 {
					suffix := "s"
					if len(plan.Delete) == 1 {
						suffix = ""
					}
					fmt.Printf("Deleting %d archive%s...\n", len(plan.Delete), suffix)

					if err := client.Delete(cmd.Context(), plan.Delete); err != nil {
						rt.Log.Audit(auditEntry(keepStr, plan.Delete, "failure"))
						return err
					}
					rt.Log.Audit(auditEntry(keepStr, plan.Delete, "success"))
				} else {
					fmt.Println("Nothing to delete.")
				}
			}

			if err := rt.State.PutRun(rec); err != nil {
				rt.Log.Warn("failed to record prune run", "error", err)
				pprint.Warn("could not record this run in history: %v", err)
			}
			return nil
		},
	}
}

func auditEntry(keepSpec string, archives []string, result string) logger.AuditEntry {
	return logger.AuditEntry{
		Timestamp: time.Now(),
		Op:        "prune.delete",
		User:      os.Getenv("USER"),
		KeepSpec:  keepSpec,
		Archives:  archives,
		Result:    result,
	}
}
