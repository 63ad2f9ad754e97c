// Package app resolves presets into configure plans and executes them.
package app

import (
	"errors"
	"log/slog"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/cmake"
	"github.com/Norgate-AV/presetgen/internal/codes"
	"github.com/Norgate-AV/presetgen/internal/env"
	"github.com/Norgate-AV/presetgen/internal/invoker"
	"github.com/Norgate-AV/presetgen/internal/journal"
	"github.com/Norgate-AV/presetgen/internal/preset"
	"github.com/Norgate-AV/presetgen/internal/utils"
)

// Generator turns preset names into plans and runs them
type Generator struct {
	catalog *preset.Catalog
	loader  *preset.Loader
	builder *cmake.Builder
	env     env.Snapshot
	host    utils.HostClass
	tool    string

	runner   Runner
	dirs     Preparer
	recorder Recorder
	log      *slog.Logger
}

// Options holds the collaborators of a Generator
type Options struct {
	Catalog *preset.Catalog
	Env     env.Snapshot
	Host    utils.HostClass

	// Tool overrides configuration tool selection when set
	Tool string

	Runner   Runner
	Dirs     Preparer
	Recorder Recorder
	Logger   *slog.Logger
}

// NewGenerator creates a generator. A nil Recorder records nothing.
func NewGenerator(opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Generator{
		catalog:  opts.Catalog,
		loader:   preset.NewLoader(opts.Catalog, opts.Env, log),
		builder:  cmake.NewBuilder(opts.Env, log),
		env:      opts.Env,
		host:     opts.Host,
		tool:     opts.Tool,
		runner:   opts.Runner,
		dirs:     opts.Dirs,
		recorder: recorder,
		log:      log,
	}
}

// Catalog returns the preset catalog
func (g *Generator) Catalog() *preset.Catalog {
	return g.catalog
}

// Host returns the host class presets are filtered for
func (g *Generator) Host() utils.HostClass {
	return g.host
}

// Resolve builds the plan for the preset called name. Host applicability is
// checked first, then the definition is located before any environment
// binding is read.
func (g *Generator) Resolve(name string) (*Plan, error) {
	if !preset.Applicable(name, g.host) {
		err := zerr.Wrap(codes.ErrPlatformUnsupported, "preset "+name+" cannot be configured on a "+string(g.host)+" host")
		return nil, zerr.With(err, "preset", name)
	}

	path, err := g.catalog.Locate(name)
	if err != nil {
		return nil, err
	}

	root, err := g.env.Root()
	if err != nil {
		return nil, zerr.With(err, "preset", name)
	}

	if paths, ok := g.env.Lookup(env.PackmanPaths); ok {
		g.log.Debug("packman paths", "paths", paths)
	}

	p, err := g.loader.LoadFile(path)
	if err != nil {
		return nil, zerr.With(err, "preset", name)
	}

	plan := &Plan{
		Preset:    p,
		Tool:      invoker.ResolveTool(g.tool, g.env, p.Name, g.host),
		SourceDir: invoker.SourceDir(root),
		Layout:    g.dirs.Plan(p),
	}

	g.log.Info("configuration tool", "path", plan.Tool, "source", plan.SourceDir)

	for _, dir := range plan.Layout.Dirs {
		flags, err := g.builder.Build(p, dir.Config)
		if err != nil {
			return nil, zerr.With(err, "preset", name)
		}

		plan.Legs = append(plan.Legs, Leg{
			Config: dir.Config,
			Invocation: invoker.Invocation{
				Tool:      plan.Tool,
				SourceDir: plan.SourceDir,
				Flags:     flags,
				WorkDir:   dir.Path,
			},
			Fingerprint: journal.Fingerprint(plan.Tool, plan.SourceDir, flags),
		})
	}

	return plan, nil
}

// Execute runs every leg of plan in order. A failing leg does not stop the
// remaining ones. The error names every failed leg.
func (g *Generator) Execute(plan *Plan) (*Report, error) {
	name := plan.Preset.Name
	report := &Report{Preset: name}

	for _, leg := range plan.Legs {
		res := g.runLeg(name, leg)
		report.Results = append(report.Results, res)
	}

	failed := report.Failed()
	if len(failed) == 0 {
		return report, nil
	}

	labels := make([]string, len(failed))
	errs := make([]error, len(failed))
	for i, res := range failed {
		labels[i] = Leg{Config: res.Config}.Label(name)
		errs[i] = res.Err
	}

	err := zerr.Wrap(errors.Join(errs...), "preset "+name+" failed for "+strings.Join(labels, ", "))
	return report, zerr.With(err, "preset", name)
}

// runLeg resets the leg directory, runs the tool and records the outcome
func (g *Generator) runLeg(name string, leg Leg) LegResult {
	inv := leg.Invocation
	res := LegResult{Config: leg.Config, Dir: inv.WorkDir, ExitCode: -1}

	prev, err := g.recorder.Get(name, leg.Config.String())
	if err != nil {
		g.log.Warn("failed to read previous run", "preset", name, "config", leg.Config, "error", err)
	}

	if prev != nil && prev.Fingerprint != leg.Fingerprint {
		res.Changed = true
		g.log.Info("command line changed since last run",
			"preset", name, "config", leg.Config, "previous", prev.CommandLine)
	}

	if err := g.dirs.Reset(inv.WorkDir); err != nil {
		g.log.Error("failed to prepare output directory", "dir", inv.WorkDir, "error", err)
		res.Err = err
		return res
	}

	g.log.Debug("command line", "preset", name, "config", leg.Config, "command", inv.CommandLine())

	res.ExitCode, res.Err = g.runner.Run(inv)

	outputs, err := journal.CollectOutputs(inv.WorkDir)
	if err != nil {
		g.log.Warn("failed to list generated files", "dir", inv.WorkDir, "error", err)
	}

	err = g.recorder.Put(journal.Record{
		Preset:      name,
		Config:      leg.Config.String(),
		Tool:        inv.Tool,
		SourceDir:   inv.SourceDir,
		Dir:         inv.WorkDir,
		CommandLine: inv.CommandLine(),
		Fingerprint: leg.Fingerprint,
		ExitCode:    res.ExitCode,
		Success:     res.OK(),
		Outputs:     outputs,
	})
	if err != nil {
		g.log.Warn("failed to record run", "preset", name, "config", leg.Config, "error", err)
	}

	return res
}
