package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tape/internal/adapters/detector"
	"go.trai.ch/tape/internal/adapters/logger"
	"go.trai.ch/tape/internal/core/ports"
)

// NodeID is the unique identifier for the spawner Graft node.
const NodeID graft.ID = "adapter.spawner"

func init() {
	graft.Register(graft.Node[ports.Spawner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Spawner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			interactive := detector.DetectEnvironment() == detector.ModeOverwrite
			return New(log, WithPTY(interactive)), nil
		},
	})
}
