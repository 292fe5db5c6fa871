// tarsnap-prune ui — launch the interactive prune plan browser.
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/internal/prune"
	"github.com/c4rlo/tarsnap-prune/internal/tarsnap"
	"github.com/c4rlo/tarsnap-prune/internal/tui"
)

func NewUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [KEEP_SPEC]",
		Short: "Browse the prune plan interactively (read-only)",
		Example: `  tarsnap-prune ui 7d,4w,12mon
  tarsnap-prune ui    # uses prune.keep from config`,
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
			listing, err := client.ListArchives(cmd.Context())
			if err != nil {
				return err
			}
			groups, err := prune.ParseListing(listing)
			if err != nil {
				return err
			}

			app := tui.New(tui.Config{
				KeepSpec: keepStr,
				Groups:   groups,
				Plan:     prune.BuildPlan(groups, specs),
			})

			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}
