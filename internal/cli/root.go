// Package cli defines the root Cobra command and global flag/context setup.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c4rlo/tarsnap-prune/internal/cli/commands"
	"github.com/c4rlo/tarsnap-prune/internal/core/config"
	"github.com/c4rlo/tarsnap-prune/internal/core/logger"
	"github.com/c4rlo/tarsnap-prune/internal/core/state"
	"github.com/c4rlo/tarsnap-prune/pkg/errs"
	"github.com/c4rlo/tarsnap-prune/pkg/pprint"
)

// globalFlags holds values bound to persistent global flags.
var globalFlags struct {
	configFile string
	keyfile    string
	debug      bool
	jsonOutput bool
	dryRun     bool
}

// rootCmd is the base command for tarsnap-prune.
var rootCmd = &cobra.Command{
	Use:           "tarsnap-prune",
	Short:         "tarsnap-prune — retention-based pruning for tarsnap backups",
	Long:          ``, // overridden by SetHelpTemplate below
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare `tarsnap-prune` — help func already prints banner
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		return initRuntime(cmd)
	},
}

// Execute runs the CLI. Called by main().
func Execute() {
	// Show banner before every help screen
	origHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		pprint.PrintBanner(commands.Version, commands.BuildDate)
		origHelp(cmd, args)
	})

	if err := rootCmd.Execute(); err != nil {
		var se *errs.Error
		if errors.As(err, &se) {
			pprint.Error("%s", se.UserMessage())
		} else {
			pprint.Error("%s", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.configFile, "config", "c", "", "Path to tarsnap-prune.yaml (defaults to auto-discovery)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.keyfile, "keyfile", "k", "", "Tarsnap key file to use (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.debug, "debug", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.jsonOutput, "json", false, "Output in machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.dryRun, "dry-run", "n", false, "Only show what would be done, don't actually delete any archives")

	// Register all subcommands
	rootCmd.AddCommand(
		commands.NewInitCmd(),
		commands.NewPruneCmd(),
		commands.NewListCmd(),
		commands.NewHistoryCmd(),
		commands.NewQACmd(),
		commands.NewUICmd(),
		commands.NewVersionCmd(),
	)
}

// initRuntime loads config, logger, and state before each command runs.
func initRuntime(cmd *cobra.Command) error {
	// Load config. A missing config file falls through to defaults inside
	// Load; anything it does return an error for (unreadable file, bad
	// YAML, failed validation) must surface, discovered or not.
	cfg, err := config.Load(globalFlags.configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Initialise logger
	home := config.Home()
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(home, "logs", "tarsnap-prune.log")
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0750); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	log, err := logger.Init(cfg.Log.Level, cfg.Log.Format, logFile, home, globalFlags.debug)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}

	// Open state DB
	dbPath := filepath.Join(home, "state.db")
	if err := os.MkdirAll(home, 0750); err != nil {
		return fmt.Errorf("create home dir: %w", err)
	}
	db, err := state.Open(dbPath)
	if err != nil {
		return fmt.Errorf("state db: %w", err)
	}

	// Store in command context
	cmd.SetContext(commands.NewContext(cmd.Context(), &commands.Runtime{
		Config: cfg,
		Log:    log,
		State:  db,
		Flags: commands.GlobalFlags{
			Keyfile:    globalFlags.keyfile,
			Debug:      globalFlags.debug,
			JSONOutput: globalFlags.jsonOutput,
			DryRun:     globalFlags.dryRun,
		},
	}))

	return nil
}
