package ports

import (
	"context"

	"go.trai.ch/tape/internal/core/domain"
)

// ChangeDetector decides whether the inputs of a batch changed since its last successful run.
//
//go:generate mockgen -source=change.go -destination=mocks/mock_change.go -package=mocks
type ChangeDetector interface {
	// Changed reports whether deps differ from the recorded state.
	Changed(ctx context.Context, deps *domain.Dependencies) (bool, error)
	// Commit records deps as the state of a successful run.
	Commit(ctx context.Context, deps *domain.Dependencies) error
}
