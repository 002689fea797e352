package ports

import (
	"context"

	"go.trai.ch/tape/internal/core/domain"
)

// Spawner runs processes on behalf of the executor.
//
//go:generate mockgen -source=spawner.go -destination=mocks/mock_spawner.go -package=mocks
type Spawner interface {
	// Spawn runs cmd to completion. EchoVisible streams the process output to the
	// console; other echo levels capture it and attach it to the returned error.
	Spawn(ctx context.Context, cmd domain.Exec) error
}
