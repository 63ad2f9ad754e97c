package logger

import (
	"context"
	"log/slog"

	"github.com/grindlemire/graft"

	"github.com/Norgate-AV/presetgen/internal/config"
)

const NodeID graft.ID = "logger"

func init() {
	graft.Register(graft.Node[*slog.Logger]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*slog.Logger, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}

			return Default(cfg.Verbose), nil
		},
	})
}
