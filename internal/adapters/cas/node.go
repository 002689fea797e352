package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
)

// NodeID is the unique identifier for the dependency store Graft node.
const NodeID graft.ID = "adapter.dependency_store"

func init() {
	graft.Register(graft.Node[ports.DependencyStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyStore, error) {
			return NewStore(domain.DefaultDependPath())
		},
	})
}
