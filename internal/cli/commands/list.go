// tarsnap-prune list — show all archives grouped by base name.
package commands

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/internal/prune"
	"github.com/c4rlo/tarsnap-prune/internal/tarsnap"
	"github.com/c4rlo/tarsnap-prune/pkg/pprint"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List archives grouped by base name",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

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

			if rt.Flags.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(groups)
			}

			pprint.Header("archives")
			table := pprint.NewTable("GROUP", "ARCHIVE", "TIMESTAMP")
			for _, base := range sortedGroupNames(groups) {
				for _, arc := range groups[base] {
					table.AddRow(base, arc.Name, arc.Timestamp.Format("2006-01-02 15:04:05"))
				}
			}
			table.Render()
			return nil
		},
	}
}

func sortedGroupNames(groups map[string][]prune.Archive) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
