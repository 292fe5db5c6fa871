// Package config provides the tarsnap-prune configuration loader.
// Config is loaded by merging defaults → ~/.tarsnap-prune/config.yaml →
// tarsnap-prune.yaml (discovered walking up from CWD) → TARSNAP_PRUNE_* env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/c4rlo/tarsnap-prune/internal/prune"
)

// ProjectConfigName is the per-directory config file discovered by walking
// up from the working directory.
const ProjectConfigName = "tarsnap-prune.yaml"

// Defaults contains factory-default values applied before any config file is loaded.
var Defaults = map[string]any{
	"tarsnap.binary": "tarsnap",
	"log.level":      "info",
	"log.format":     "text",
}

// Config is the fully-decoded configuration.
type Config struct {
	Version string        `mapstructure:"version"`
	Tarsnap TarsnapConfig `mapstructure:"tarsnap"`
	Prune   PruneConfig   `mapstructure:"prune"`
	Log     LogConfig     `mapstructure:"log"`
}

// TarsnapConfig locates the tarsnap binary and key material.
type TarsnapConfig struct {
	Binary  string `mapstructure:"binary"`
	Keyfile string `mapstructure:"keyfile"`
}

// PruneConfig holds retention defaults.
type PruneConfig struct {
	Keep string `mapstructure:"keep"` // default keep spec, e.g. "7d,4w,12mon"
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"` // debug | info | warn | error
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json | text
}

// Load discovers and loads the configuration, walking up directories to find
// tarsnap-prune.yaml, then merging it with the global config and environment
// variables.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	// Apply defaults
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}

	// Environment variable binding: TARSNAP_PRUNE_LOG_LEVEL → log.level
	v.SetEnvPrefix("TARSNAP_PRUNE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load global config (~/.tarsnap-prune/config.yaml) if it exists
	globalCfg := filepath.Join(Home(), "config.yaml")
	if _, err := os.Stat(globalCfg); err == nil {
		v.SetConfigFile(globalCfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read global config: %w", err)
		}
	}

	// Load project config
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		path, err := discoverProjectConfig()
		if err == nil {
			v.SetConfigFile(path)
		}
	}

	// Only the not-found case (no file set) skips the merge; a config file
	// that exists but fails to parse is an error even when discovered.
	if v.ConfigFileUsed() != "" {
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read project config %q: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Resolve env variable placeholders in path values
	cfg.Tarsnap.Keyfile = os.ExpandEnv(cfg.Tarsnap.Keyfile)
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverProjectConfig walks up from the CWD looking for tarsnap-prune.yaml.
func discoverProjectConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s not found", ProjectConfigName)
}

// validate performs semantic validation on the loaded config.
func validate(cfg *Config) error {
	if cfg.Prune.Keep != "" {
		if _, err := prune.ParseKeepSpecs(cfg.Prune.Keep); err != nil {
			return fmt.Errorf("prune.keep: %w", err)
		}
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	return nil
}

// Home returns the tarsnap-prune home directory (~/.tarsnap-prune).
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tarsnap-prune"
	}
	return filepath.Join(home, ".tarsnap-prune")
}

// DefaultConfigTemplate is the content written by `tarsnap-prune init`.
const DefaultConfigTemplate = `# tarsnap-prune.yaml
version: "1"

tarsnap:
  binary: tarsnap
  # keyfile: /root/tarsnap.key

prune:
  # Default keep spec used when the prune command gets no argument.
  keep: 7d,4w,12mon

log:
  level: info
  format: text
`
