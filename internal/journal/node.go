package journal

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Norgate-AV/presetgen/internal/config"
)

const NodeID graft.ID = "journal"

func init() {
	graft.Register(graft.Node[*Journal]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Journal, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}

			// A nil journal records nothing
			if cfg.NoJournal || cfg.DryRun {
				return nil, nil
			}

			return New(cfg.JournalDir)
		},
	})
}
