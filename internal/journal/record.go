package journal

import "time"

// Record is the outcome of one configure leg
type Record struct {
	// Preset is the preset name
	Preset string `json:"preset" yaml:"preset"`

	// Config is the build configuration, empty for multi-configuration platforms
	Config string `json:"config,omitempty" yaml:"config,omitempty"`

	// Tool is the configuration tool that was run
	Tool string `json:"tool" yaml:"tool"`

	SourceDir string `json:"source_dir" yaml:"source_dir"`
	Dir       string `json:"dir" yaml:"dir"`

	// CommandLine is the display form of the invocation
	CommandLine string `json:"command_line" yaml:"command_line"`

	// Fingerprint identifies the command line, see Fingerprint
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`

	ExitCode int  `json:"exit_code" yaml:"exit_code"`
	Success  bool `json:"success" yaml:"success"`

	// Outputs lists the files the tool left at the top of Dir
	Outputs []string `json:"outputs" yaml:"outputs"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Key returns the journal key of the record
func (r Record) Key() string {
	return Key(r.Preset, r.Config)
}

// Key returns the journal key for a preset and configuration
func Key(preset, config string) string {
	if config == "" {
		return preset
	}

	return preset + "/" + config
}
