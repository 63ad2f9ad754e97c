package app

import (
	"github.com/Norgate-AV/presetgen/internal/invoker"
	"github.com/Norgate-AV/presetgen/internal/layout"
	"github.com/Norgate-AV/presetgen/internal/preset"
)

// Plan is a fully resolved preset: one leg per output directory
type Plan struct {
	Preset    *preset.Preset
	Tool      string
	SourceDir string
	Layout    layout.Layout
	Legs      []Leg
}

// Leg is one configure run of a plan
type Leg struct {
	// Config is empty for multi-configuration platforms
	Config      preset.Config
	Invocation  invoker.Invocation
	Fingerprint string
}

// Label names the leg in messages: the configuration, or the preset name
// for multi-configuration platforms
func (l Leg) Label(presetName string) string {
	if l.Config == "" {
		return presetName
	}

	return l.Config.String()
}

// LegResult is the outcome of one leg
type LegResult struct {
	Config   preset.Config
	Dir      string
	ExitCode int
	Err      error

	// Changed is set when the command line differs from the previous run
	Changed bool
}

// OK reports whether the leg configured successfully
func (r LegResult) OK() bool {
	return r.Err == nil
}

// Report collects the leg results of an executed plan in order
type Report struct {
	Preset  string
	Results []LegResult
}

// Failed returns the results of the legs that did not succeed
func (r *Report) Failed() []LegResult {
	var failed []LegResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}

	return failed
}

// OK reports whether every leg succeeded
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}
