package app

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/grindlemire/graft"

	"github.com/Norgate-AV/presetgen/internal/config"
	"github.com/Norgate-AV/presetgen/internal/env"
	"github.com/Norgate-AV/presetgen/internal/invoker"
	"github.com/Norgate-AV/presetgen/internal/journal"
	"github.com/Norgate-AV/presetgen/internal/layout"
	"github.com/Norgate-AV/presetgen/internal/logger"
	"github.com/Norgate-AV/presetgen/internal/preset"
	"github.com/Norgate-AV/presetgen/internal/utils"
)

const (
	// GeneratorNodeID is the unique identifier for the Generator Graft node.
	GeneratorNodeID graft.ID = "app.generator"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components is everything a command needs
type Components struct {
	Config    *config.Config
	Logger    *slog.Logger
	Generator *Generator

	// Journal is nil when recording is disabled
	Journal *journal.Journal
}

// Close releases the journal database
func (c *Components) Close() error {
	if c.Journal != nil {
		return c.Journal.Close()
	}

	return nil
}

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        GeneratorNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{
			config.NodeID,
			env.NodeID,
			logger.NodeID,
			journal.NodeID,
		},
		Run: runGeneratorNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{
			GeneratorNodeID,
			config.NodeID,
			logger.NodeID,
			journal.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runGeneratorNode(ctx context.Context) (*Generator, error) {
	cfg, err := graft.Dep[*config.Config](ctx)
	if err != nil {
		return nil, err
	}

	snap, err := graft.Dep[env.Snapshot](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*slog.Logger](ctx)
	if err != nil {
		return nil, err
	}

	j, err := graft.Dep[*journal.Journal](ctx)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Catalog: preset.NewCatalog(cfg.PresetsDir).WithLogger(log),
		Env:     snap,
		Host:    utils.CurrentHost(),
		Tool:    cfg.Tool,
		Runner:  invoker.New(log),
		Dirs:    layout.NewManager(filepath.Join(snap.Get(env.RootDir), "compiler"), log),
		Logger:  log,
	}

	// keep the interface nil when the journal is disabled
	if j != nil {
		opts.Recorder = j
	}

	return NewGenerator(opts), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	gen, err := graft.Dep[*Generator](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*config.Config](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*slog.Logger](ctx)
	if err != nil {
		return nil, err
	}

	j, err := graft.Dep[*journal.Journal](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		Config:    cfg,
		Logger:    log,
		Generator: gen,
		Journal:   j,
	}, nil
}
