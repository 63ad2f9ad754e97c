package config

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "config"

func init() {
	graft.Register(graft.Node[*Config]{
		ID:        NodeID,
		Cacheable: false,
		Run: func(ctx context.Context) (*Config, error) {
			return Load()
		},
	})
}
