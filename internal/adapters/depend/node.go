package depend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tape/internal/adapters/cas" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tape/internal/adapters/fs"  //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tape/internal/core/ports"
)

// NodeID is the unique identifier for the change detector Graft node.
const NodeID graft.ID = "adapter.change_detector"

func init() {
	graft.Register(graft.Node[ports.ChangeDetector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.ChangeDetector, error) {
			store, err := graft.Dep[ports.DependencyStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, hasher), nil
		},
	})
}
