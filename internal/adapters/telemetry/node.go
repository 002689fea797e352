package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tape/internal/core/ports"
)

const (
	// SummaryNodeID is the unique identifier for the run summary Graft node.
	SummaryNodeID graft.ID = "adapter.telemetry.summary"
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[*Summary]{
		ID:        SummaryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Summary, error) {
			return NewSummary(), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{SummaryNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			summary, err := graft.Dep[*Summary](ctx)
			if err != nil {
				return nil, err
			}
			Setup(summary)
			return NewOTelTracer("tape"), nil
		},
	})
}
