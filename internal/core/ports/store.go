package ports

import "go.trai.ch/tape/internal/core/domain"

// DependencyStore persists dependency records by cache key.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DependencyStore interface {
	// Get retrieves the record for a cache key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.DependencyRecord, error)

	// Put stores the record under its cache key.
	Put(record domain.DependencyRecord) error
}
