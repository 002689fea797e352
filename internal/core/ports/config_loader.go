package ports

import "go.trai.ch/tape/internal/core/domain"

// ConfigLoader reads tapefiles.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load parses the tapefile at path.
	Load(path string) (*domain.Tapefile, error)
}
