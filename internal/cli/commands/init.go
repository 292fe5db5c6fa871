// tarsnap-prune init — scaffold a new tarsnap-prune.yaml in the target directory.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/internal/core/config"
	"github.com/c4rlo/tarsnap-prune/pkg/pprint"
)

func NewInitCmd() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new tarsnap-prune.yaml in the current (or specified) directory",
		Example: `  tarsnap-prune init
  tarsnap-prune init --path /etc/backups`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = "."
			}
			outFile := filepath.Join(targetPath, config.ProjectConfigName)
			if _, err := os.Stat(outFile); err == nil {
				return fmt.Errorf("%s already exists — delete it first to reinitialise", outFile)
			}

			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("create dir %q: %w", targetPath, err)
			}

			if err := os.WriteFile(outFile, []byte(config.DefaultConfigTemplate), 0644); err != nil {
				return fmt.Errorf("write %s: %w", config.ProjectConfigName, err)
			}

			pprint.Success("Created %s", outFile)
			pprint.Info("Edit the keep spec, then run: tarsnap-prune prune --dry-run")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", ".", "Target directory for tarsnap-prune.yaml")
	return cmd
}
