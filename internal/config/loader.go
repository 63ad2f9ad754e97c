package config

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command flags to their configuration keys
var flagKeys = map[string]string{
	"tool":        "tool",
	"presets-dir": "presets_dir",
	"env-file":    "env_file",
	"journal-dir": "journal_dir",
	"no-journal":  "no_journal",
	"dry-run":     "dry_run",
	"verbose":     "verbose",
	"no-color":    "no_color",
}

// Loader handles configuration loading from various sources
type Loader struct {
	userConfigDir func() (string, error)
	workingDir    func() (string, error)
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		userConfigDir: os.UserConfigDir,
		workingDir:    os.Getwd,
	}
}

// LoadForCommand loads configuration for a command. Flags set on cmd
// override local config, which overrides global config and defaults.
func (l *Loader) LoadForCommand(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig()
	l.bindCommandFlags(cmd)

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		viper.Set("no_color", true)
	}

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("presets_dir", DefaultPresetsDir)
	viper.SetDefault("journal_dir", DefaultJournalDir)
	viper.SetDefault("verbose", DefaultVerbose)
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	dir, err := l.userConfigDir()
	if err != nil {
		return
	}

	if path := FindGlobalConfig(dir); path != "" {
		viper.SetConfigFile(path)
		_ = viper.ReadInConfig()
	}
}

// loadLocalConfig merges the nearest project config over the global one
func (l *Loader) loadLocalConfig() {
	dir, err := l.workingDir()
	if err != nil {
		return // silently ignore, config.Load() will handle validation
	}

	if path := FindLocalConfig(dir); path != "" {
		viper.SetConfigFile(path)
		_ = viper.MergeInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}
