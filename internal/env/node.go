package env

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Norgate-AV/presetgen/internal/config"
)

const NodeID graft.ID = "env"

func init() {
	graft.Register(graft.Node[Snapshot]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (Snapshot, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return Snapshot{}, err
			}

			return Capture(cfg.EnvFile)
		},
	})
}
