// Package config loads presetgen settings from defaults, config files and flags.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

// Default configuration values
const (
	DefaultPresetsDir = "buildtools/presets"
	DefaultJournalDir = ".presetgen"
	DefaultVerbose    = false
)

// Holds the configuration options for presetgen
type Config struct {
	// Explicit path to the configuration tool. Empty selects it from the environment.
	Tool string

	// Directory holding preset definitions, with a public/ fallback below it
	PresetsDir string

	// Optional dotenv file filling environment bindings missing from the process
	EnvFile string

	// Directory of the run journal
	JournalDir string

	// Skip recording configure runs
	NoJournal bool

	// Resolve and print without touching the filesystem or running the tool
	DryRun bool

	// Enable debug logging
	Verbose bool

	// Disable styled output
	NoColor bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Tool:       viper.GetString("tool"),
		PresetsDir: viper.GetString("presets_dir"),
		EnvFile:    viper.GetString("env_file"),
		JournalDir: viper.GetString("journal_dir"),
		NoJournal:  viper.GetBool("no_journal"),
		DryRun:     viper.GetBool("dry_run"),
		Verbose:    viper.GetBool("verbose"),
		NoColor:    viper.GetBool("no_color"),
	}

	if cfg.PresetsDir == "" {
		cfg.PresetsDir = DefaultPresetsDir
	}

	if cfg.JournalDir == "" {
		cfg.JournalDir = DefaultJournalDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PresetsDir == "" {
		return zerr.New("presets directory must not be empty")
	}

	abs, err := filepath.Abs(c.PresetsDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid presets directory "+c.PresetsDir), "path", c.PresetsDir)
	}
	c.PresetsDir = abs

	if c.EnvFile != "" {
		abs, err := filepath.Abs(c.EnvFile)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid env file path "+c.EnvFile), "path", c.EnvFile)
		}

		c.EnvFile = abs
	}

	if c.JournalDir != "" {
		abs, err := filepath.Abs(c.JournalDir)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid journal directory "+c.JournalDir), "path", c.JournalDir)
		}

		c.JournalDir = abs
	}

	// a bare name is looked up on PATH, a relative path is anchored here
	// since the tool runs inside each output directory
	if c.Tool != "" && filepath.Base(c.Tool) != c.Tool {
		abs, err := filepath.Abs(c.Tool)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid tool path "+c.Tool), "path", c.Tool)
		}

		c.Tool = abs
	}

	return nil
}
